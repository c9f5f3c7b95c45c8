package bible

// Books maps canonical book codes to Traditional Chinese book names. Fixed
// at process start, read-only.
var Books = map[string]string{
	"GEN": "創世記", "EXO": "出埃及記", "LEV": "利未記", "NUM": "民數記", "DEU": "申命記",
	"JOS": "約書亞記", "JDG": "士師記", "RUT": "路得記", "1SA": "撒母耳記上", "2SA": "撒母耳記下",
	"1KI": "列王紀上", "2KI": "列王紀下", "1CH": "歷代志上", "2CH": "歷代志下", "EZR": "以斯拉記",
	"NEH": "尼希米記", "EST": "以斯帖記", "JOB": "約伯記", "PSA": "詩篇", "PRO": "箴言",
	"ECC": "傳道書", "SNG": "雅歌", "ISA": "以賽亞書", "JER": "耶利米書", "LAM": "耶利米哀歌",
	"EZK": "以西結書", "DAN": "但以理書", "HOS": "何西阿書", "JOE": "約珥書", "AMO": "阿摩司書",
	"OBA": "俄巴底亞書", "JON": "約拿書", "MIC": "彌迦書", "NAH": "那鴻書", "HAB": "哈巴谷書",
	"ZEP": "西番雅書", "HAG": "哈該書", "ZEC": "撒迦利亞書", "MAL": "瑪拉基書",
	"MAT": "馬太福音", "MRK": "馬可福音", "LUK": "路加福音", "JHN": "約翰福音", "ACT": "使徒行傳",
	"ROM": "羅馬書", "1CO": "哥林多前書", "2CO": "哥林多後書", "GAL": "加拉太書", "EPH": "以弗所書",
	"PHP": "腓立比書", "COL": "歌羅西書", "1TH": "帖撒羅尼迦前書", "2TH": "帖撒羅尼迦後書",
	"1TI": "提摩太前書", "2TI": "提摩太後書", "TIT": "提多書", "PHM": "腓利門書", "HEB": "希伯來書",
	"JAS": "雅各書", "1PE": "彼得前書", "2PE": "彼得後書", "1JN": "約翰一書", "2JN": "約翰二書",
	"3JN": "約翰三書", "JUD": "猶大書", "REV": "啟示錄",
}

// BookName resolves a book code to its display name, falling back to the
// raw code for unknown books.
func BookName(code string) string {
	if name, ok := Books[code]; ok {
		return name
	}
	return code
}
