// This is a http type of reporter.
// It fetches data from the tracker registry, the history store and the
// event log and publishes it on the http routes.

package reporter

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/meeray/market-go/historydb"
	"github.com/meeray/market-go/streamsync"
	"github.com/meeray/market-go/txtracker"
)

const (
	ROUTE_HELLO              = "/hello"
	ROUTE_PENDING            = "/pending"
	ROUTE_PENDING_ONE        = "/pending/:id"
	ROUTE_HISTORY            = "/history"
	ROUTE_NOTIFICATIONS      = "/notifications"
	ROUTE_NOTIFICATION_READ  = "/notifications/:id/read"
	ROUTE_NOTIFICATIONS_READ = "/notifications/read-all"
	ROUTE_EVENTS             = "/events/:category"
	ROUTE_FEED               = "/feed"
	ROUTE_METRICS            = "/metrics"
)

type HttpReporter struct {
	serverIP   string // listen ip
	serverPort string // listen port

	// upstream data sources
	tracker *txtracker.Tracker
	history *historydb.Store
	events  *streamsync.EventLog
}

func NewHttpReporter(serverIP string, serverPort string, tracker *txtracker.Tracker, history *historydb.Store, events *streamsync.EventLog) *HttpReporter {
	return &HttpReporter{
		serverIP:   serverIP,
		serverPort: serverPort,
		tracker:    tracker,
		history:    history,
		events:     events,
	}
}

// Hook up routes & handlers
func (h *HttpReporter) SetupRouter() *gin.Engine {
	router := gin.Default()

	router.GET(ROUTE_HELLO, Hello)
	router.GET(ROUTE_PENDING, h.Pending)
	router.GET(ROUTE_PENDING_ONE, h.PendingOne)
	router.GET(ROUTE_HISTORY, h.History)
	router.GET(ROUTE_NOTIFICATIONS, h.Notifications)
	router.POST(ROUTE_NOTIFICATION_READ, h.MarkNotificationRead)
	router.POST(ROUTE_NOTIFICATIONS_READ, h.MarkAllNotificationsRead)
	router.GET(ROUTE_EVENTS, h.Events)
	router.GET(ROUTE_FEED, h.Feed)
	router.GET(ROUTE_METRICS, gin.WrapH(promhttp.Handler()))

	return router
}

// Hook up router & ip:port
func (h *HttpReporter) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

// Example route.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "world",
	})
}

// In-flight transactions, optionally filtered by type.
func (h *HttpReporter) Pending(c *gin.Context) {
	opType := c.Query("type")

	var list []txtracker.TransactionStatus
	if opType != "" {
		list = h.tracker.Registry().ListByType(opType)
	} else {
		list = h.tracker.Registry().List()
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *HttpReporter) PendingOne(c *gin.Context) {
	st, ok := h.tracker.Registry().Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending transaction found"})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Terminal transactions, most-recent first. Filters: type, status.
func (h *HttpReporter) History(c *gin.Context) {
	var (
		list []txtracker.TransactionStatus
		err  error
	)
	switch {
	case c.Query("type") != "":
		list, err = h.history.HistoryByType(c.Query("type"))
	case c.Query("status") != "":
		list, err = h.history.HistoryByStatus(txtracker.Status(c.Query("status")))
	default:
		list, err = h.history.History(0)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *HttpReporter) Notifications(c *gin.Context) {
	list, err := h.history.Notifications()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	unread, err := h.history.UnreadCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "unread": unread})
}

func (h *HttpReporter) MarkNotificationRead(c *gin.Context) {
	if err := h.history.MarkRead(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *HttpReporter) MarkAllNotificationsRead(c *gin.Context) {
	if err := h.history.MarkAllRead(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Recent events of one category, most-recent first.
func (h *HttpReporter) Events(c *gin.Context) {
	category := c.Param("category")
	events := h.events.Category(category)
	if len(events) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No events found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// The raw event feed across all categories.
func (h *HttpReporter) Feed(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.events.Raw()})
}
