package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/mailer"
	"github.com/ariefcatur/zenzee-admin/internal/orders"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Notification is what the admin dashboard shows for a new order. The page
// opens Link itself when AutoOpen is set.
type Notification struct {
	OrderID   string    `json:"order_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link,omitempty"`
	AutoOpen  bool      `json:"auto_open"`
	CreatedAt time.Time `json:"created_at"`
}

type Mailer interface {
	Fire(msg mailer.Message)
}

type Service struct {
	Settings     settings.Store
	Redis        *redis.Client
	Mailer       Mailer
	DefaultPhone string
	Log          *zap.Logger
	Now          func() time.Time
}

// HandleOrderCreated consumes order.created: it records a staff
// notification and fires the customer confirmation email.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.Log.Warn("drop undecodable order event", zap.Error(err))
		return nil
	}
	if env.EventType != events.TypeOrderCreated {
		return nil
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, "notify", env.EventID)
	first, err := redisx.MarkOnce(ctx, s.Redis, dkey, redisx.TTLDedup)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	p, err := events.Decode[orders.OrderCreatedPayload](env)
	if err != nil {
		s.Log.Warn("drop order event with bad payload", zap.String("event_id", env.EventID), zap.Error(err))
		return nil
	}

	if err := s.notifyStaff(ctx, p); err != nil {
		// allow redelivery to try again
		_ = s.Redis.Del(ctx, dkey).Err()
		return err
	}
	if p.Customer.Email != "" && s.Mailer != nil {
		s.Mailer.Fire(mailer.Message{Template: mailer.TemplateOrderConfirmation, To: p.Customer.Email, Data: p})
	}
	return nil
}

func (s *Service) notifyStaff(ctx context.Context, p orders.OrderCreatedPayload) error {
	cfg := settings.Notifications.Load(ctx, s.Settings, s.Log)
	if !cfg.Enabled {
		return nil
	}
	tmpl := cfg.Template
	if tmpl == "" {
		tmpl = settings.DefaultNotificationTemplate
	}
	phone := cfg.Phone
	if phone == "" {
		phone = s.DefaultPhone
	}

	n := Notification{
		OrderID:   p.OrderID,
		Message:   Format(tmpl, p),
		AutoOpen:  cfg.AutoOpen,
		CreatedAt: s.now(),
	}
	if link, err := WhatsAppLink(phone, n.Message); err == nil {
		n.Link = link
	} else {
		n.AutoOpen = false
		s.Log.Warn("no whatsapp link for order", zap.String("order_id", p.OrderID), zap.Error(err))
	}

	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	pipe := s.Redis.TxPipeline()
	pipe.LPush(ctx, redisx.KeyOrderNotifications, b)
	pipe.LTrim(ctx, redisx.KeyOrderNotifications, 0, redisx.MaxNotifications-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	s.Log.Info("order notification queued", zap.String("order_id", p.OrderID), zap.Bool("auto_open", n.AutoOpen))
	return nil
}

// Recent returns up to n notifications, newest first.
func (s *Service) Recent(ctx context.Context, n int64) ([]Notification, error) {
	if n <= 0 || n > redisx.MaxNotifications {
		n = redisx.MaxNotifications
	}
	raw, err := s.Redis.LRange(ctx, redisx.KeyOrderNotifications, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Notification, 0, len(raw))
	for _, r := range raw {
		var x Notification
		if err := json.Unmarshal([]byte(r), &x); err != nil {
			continue
		}
		out = append(out, x)
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
