package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hoklam-ng/proclaim/app/announcements"
	"github.com/hoklam-ng/proclaim/app/bible"
	"github.com/hoklam-ng/proclaim/app/hymn"
	"github.com/hoklam-ng/proclaim/app/realtime"
	"github.com/hoklam-ng/proclaim/app/sermon"
	"github.com/labstack/echo/v4"
)

type ProclaimController struct {
	bs  *bible.Service
	hs  *hymn.Service
	as  *announcements.Service
	sm  *sermon.Holder
	hub *realtime.Hub
}

func NewProclaimController(bs *bible.Service, hs *hymn.Service, as *announcements.Service,
	sm *sermon.Holder, hub *realtime.Hub) *ProclaimController {
	return &ProclaimController{bs: bs, hs: hs, as: as, sm: sm, hub: hub}
}

func (pc *ProclaimController) GetControlPanel(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

func (pc *ProclaimController) GetDisplay(c echo.Context) error {
	return c.Render(http.StatusOK, "display.html", nil)
}

func (pc *ProclaimController) GetBibleBooks(c echo.Context) error {
	return c.JSON(http.StatusOK, bible.Books)
}

func (pc *ProclaimController) SearchBible(c echo.Context) error {
	var req bible.SearchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	result, err := pc.bs.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (pc *ProclaimController) SearchHymn(c echo.Context) error {
	var req hymn.Request
	if err := c.Bind(&req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pc.hs.Search(req))
}

func (pc *ProclaimController) GetSermonMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, pc.sm.Get())
}

func (pc *ProclaimController) UpdateSermonMeta(c echo.Context) error {
	var patch sermon.Patch
	if err := c.Bind(&patch); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pc.sm.Update(patch))
}

func (pc *ProclaimController) GetAnnouncements(c echo.Context) error {
	return c.JSON(http.StatusOK, pc.as.List())
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// control panel and display are same-origin pages; no auth exists
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ConnectViewer upgrades the connection to a viewer session. The current
// sermon meta is replayed to the new session before it joins the broadcast
// set; verse and hymn results are not replayed, so a viewer joining
// mid-session sees only future searches.
func (pc *ProclaimController) ConnectViewer(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sess := realtime.NewSession(pc.hub, conn)
	// snapshot and join under the holder's lock, so a concurrent meta update
	// cannot slip between the replay and the broadcast-set insertion
	pc.sm.Join(func(meta sermon.Meta) {
		sess.Send(realtime.Event{Name: "sermon-meta-updated", Data: meta})
		pc.hub.Add(sess)
	})
	sess.Run()
	return nil
}
