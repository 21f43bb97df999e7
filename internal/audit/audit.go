// Package audit records back-office actions in acciones_admin. Recording
// never blocks and never fails the request that triggered it.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/granitoskate/backoffice/internal/metrics"
	"github.com/granitoskate/backoffice/internal/middleware"
	"github.com/granitoskate/backoffice/internal/models"
	"gorm.io/datatypes"
)

const (
	ActorHeader  = "Admin-Name"
	DefaultActor = "Admin"
	WebhookActor = "Webhook Shopify"
)

type Recorder interface {
	Record(actor, action string, details map[string]interface{})
}

type Sink interface {
	Insert(ctx context.Context, entry *models.AccionAdmin) error
}

// Logger queues entries in memory and writes them from a single goroutine.
type Logger struct {
	sink    Sink
	queue   chan models.AccionAdmin
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewLogger(sink Sink, size int) *Logger {
	if size <= 0 {
		size = 256
	}
	l := &Logger{
		sink:    sink,
		queue:   make(chan models.AccionAdmin, size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Logger) Record(actor, action string, details map[string]interface{}) {
	entry := models.AccionAdmin{
		AdminNombre: actor,
		TipoAccion:  action,
		Detalles:    datatypes.JSON("{}"),
		FechaAccion: time.Now().UTC(),
	}
	if len(details) > 0 {
		if b, err := json.Marshal(details); err == nil {
			entry.Detalles = datatypes.JSON(b)
		} else {
			slog.Warn("audit details not serializable", "action", action, "error", err)
		}
	}

	select {
	case l.queue <- entry:
	default:
		metrics.AuditDropped()
		slog.Warn("audit queue full, entry dropped", "action", action, "actor", actor)
	}
}

func (l *Logger) run() {
	defer close(l.stopped)
	for {
		select {
		case entry := <-l.queue:
			l.write(entry)
		case <-l.done:
			for {
				select {
				case entry := <-l.queue:
					l.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (l *Logger) write(entry models.AccionAdmin) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.sink.Insert(ctx, &entry); err != nil {
		metrics.AuditDropped()
		slog.Error("audit insert failed", "action", entry.TipoAccion, "actor", entry.AdminNombre, "error", err)
	}
}

// Stop drains queued entries and waits for the writer to exit.
func (l *Logger) Stop() {
	l.once.Do(func() { close(l.done) })
	<-l.stopped
}

// Actor names who performed a request: the admin in the verified token,
// else the Admin-Name header, else DefaultActor.
func Actor(c *fiber.Ctx) string {
	if claims, ok := middleware.Claims(c); ok {
		if name, _ := claims["name"].(string); name != "" {
			return name
		}
		if email, _ := claims["email"].(string); email != "" {
			return email
		}
	}
	if name := strings.TrimSpace(c.Get(ActorHeader)); name != "" {
		return name
	}
	return DefaultActor
}
