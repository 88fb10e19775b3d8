package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/balwinder10003-code/ATTRAAH/internal/entity"
)

var errStoreDown = errors.New("store unreachable")

type fakeStore struct {
	mu     sync.Mutex
	orders []*entity.Order
	down   bool
}

func (s *fakeStore) Append(ctx context.Context, o *entity.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	for _, ex := range s.orders {
		if ex.OrderID == o.OrderID {
			return fmt.Errorf("duplicate order id %s", o.OrderID)
		}
	}
	cp := *o
	s.orders = append(s.orders, &cp)
	return nil
}

func (s *fakeStore) UpdateStatus(ctx context.Context, orderID string, status entity.Status, tr *entity.Tracking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return errStoreDown
	}
	for _, o := range s.orders {
		if o.OrderID == orderID {
			o.Status = status
			o.UpdatedAt = time.Now()
			if tr != nil {
				o.Courier = tr.Courier
				o.TrackingID = tr.TrackingID
				o.TrackingURL = tr.TrackingURL
			}
			return nil
		}
	}
	return nil // unknown id is a silent no-op, like the real store
}

func (s *fakeStore) FindByCustomer(ctx context.Context, customerID string) ([]entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	var out []entity.Order
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].OrderID > out[j].OrderID
	})
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down {
		return nil, errStoreDown
	}
	for _, o := range s.orders {
		if o.OrderID == orderID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *fakeStore) get(orderID string) *entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderID == orderID {
			cp := *o
			return &cp
		}
	}
	return nil
}

type sentMsg struct {
	Kind    string // "text", "choices", "text_actions", "image", "image_actions"
	To      string
	Text    string
	Choices []string
	Actions []Action
	Image   Image
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMsg
	down bool
}

func (n *fakeNotifier) record(m sentMsg) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.down {
		return errors.New("notifier unreachable")
	}
	n.sent = append(n.sent, m)
	return nil
}

func (n *fakeNotifier) SendText(ctx context.Context, to, text string) error {
	return n.record(sentMsg{Kind: "text", To: to, Text: text})
}

func (n *fakeNotifier) SendTextWithChoices(ctx context.Context, to, text string, choices []string) error {
	return n.record(sentMsg{Kind: "choices", To: to, Text: text, Choices: choices})
}

func (n *fakeNotifier) SendTextWithActions(ctx context.Context, to, text string, actions []Action) error {
	return n.record(sentMsg{Kind: "text_actions", To: to, Text: text, Actions: actions})
}

func (n *fakeNotifier) SendImage(ctx context.Context, to string, img Image, caption string) error {
	return n.record(sentMsg{Kind: "image", To: to, Text: caption, Image: img})
}

func (n *fakeNotifier) SendImageWithActions(ctx context.Context, to string, img Image, caption string, actions []Action) error {
	return n.record(sentMsg{Kind: "image_actions", To: to, Text: caption, Image: img, Actions: actions})
}

func (n *fakeNotifier) last() sentMsg {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		return sentMsg{}
	}
	return n.sent[len(n.sent)-1]
}

// lastTo returns the most recent message delivered to a participant.
func (n *fakeNotifier) lastTo(to string) (sentMsg, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.sent) - 1; i >= 0; i-- {
		if n.sent[i].To == to {
			return n.sent[i], true
		}
	}
	return sentMsg{}, false
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type fakeTokens struct {
	mu       sync.Mutex
	n        int
	bindings map[string]ActionBinding
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{bindings: make(map[string]ActionBinding)}
}

func (f *fakeTokens) Bind(ctx context.Context, b ActionBinding) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	tok := fmt.Sprintf("tok-%d", f.n)
	f.bindings[tok] = b
	return tok, nil
}

func (f *fakeTokens) Resolve(ctx context.Context, token string) (*ActionBinding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bindings[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	cp := b
	return &cp, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []OrderEvent
}

func (p *fakePublisher) Publish(ctx context.Context, ev OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}
