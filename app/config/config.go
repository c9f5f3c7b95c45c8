package config

// ProclaimConfig is the per-deployment configuration read from
// <data-dir>/config.json.
type ProclaimConfig struct {
	// A human readable name shown in page titles. Eg: "Grace Chapel"
	InstanceName string `json:"instance_name"`
	DataDir      string `json:"-"`
	// Verse database filename relative to DataDir
	DBFile         string   `json:"db_file"`
	Hostnames      []string `json:"hostnames"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	LogLatency     bool     `json:"log_latency"`
}

// ServerRuntimeConfig holds the settings passed as command line flags
// rather than config.json.
type ServerRuntimeConfig struct {
	Addr               string
	Port               int
	CertDir            string
	AcmeEnabled        bool
	RateLimit          int
	GzipLevel          int
	BehindLoadBalancer bool
}

func (c *ProclaimConfig) DBFileOrDefault() string {
	if c.DBFile != "" {
		return c.DBFile
	}
	return "db.sqlite3"
}
