// Package client is the Go client for the notification surface of
// the server: a REST facade for auth and acknowledgements, an
// in-memory notification store, and a websocket transport that feeds
// pushed events into the store through a closed dispatch table.
package client

import (
	"context"

	"pethealth/internal/domain"
)

// Session glues the facade, the store and the transport together for
// one signed-in user. Every mutation goes to the server first; the
// local store only changes after the server accepted, so the store
// never shows state the server would contradict.
type Session struct {
	facade    *Facade
	store     *Store
	transport *Transport
}

// SessionConfig carries what NewSession needs. Facade must hold a
// valid token already (via Login or SetToken).
type SessionConfig struct {
	Facade   *Facade
	Alerter  Alerter
	OnStatus func(Status)
}

// NewSession builds a session and its transport. The transport is not
// connected yet; call Start.
func NewSession(cfg SessionConfig) (*Session, error) {
	store := NewStore()
	tr, err := NewTransport(TransportConfig{
		BaseURL:  cfg.Facade.BaseURL(),
		Token:    cfg.Facade.Token(),
		Store:    store,
		Alerter:  cfg.Alerter,
		OnStatus: cfg.OnStatus,
	})
	if err != nil {
		return nil, err
	}
	return &Session{facade: cfg.Facade, store: store, transport: tr}, nil
}

func (s *Session) Store() *Store         { return s.store }
func (s *Session) Facade() *Facade       { return s.facade }
func (s *Session) Transport() *Transport { return s.transport }

// Start connects the event stream and pulls the first page so the
// store opens warm instead of empty.
func (s *Session) Start(ctx context.Context) error {
	if err := s.transport.Connect(); err != nil {
		return err
	}
	return s.Sync(ctx)
}

// Stop tears the event stream down. The store keeps its contents.
func (s *Session) Stop() {
	s.transport.Close()
}

// Sync fetches the latest page and merges it over whatever pushes
// arrived meanwhile. Fetched state wins on conflicting ids.
func (s *Session) Sync(ctx context.Context) error {
	list, _, err := s.facade.ListNotifications(ctx, 50, 0)
	if err != nil {
		return err
	}
	s.store.Merge(list)
	return nil
}

// MarkRead acknowledges one notification on the server, then in the
// store.
func (s *Session) MarkRead(ctx context.Context, id string) error {
	if err := s.facade.MarkRead(ctx, id); err != nil {
		return err
	}
	s.store.MarkAsRead(id)
	return nil
}

// MarkAllRead acknowledges everything on the server, then locally.
func (s *Session) MarkAllRead(ctx context.Context) error {
	if err := s.facade.MarkAllRead(ctx); err != nil {
		return err
	}
	s.store.MarkAllAsRead()
	return nil
}

// MarkCompleted flags a notification's task as done on the server,
// then locally.
func (s *Session) MarkCompleted(ctx context.Context, id string) error {
	if err := s.facade.MarkCompleted(ctx, id); err != nil {
		return err
	}
	s.store.MarkCompleted(id)
	return nil
}

// Delete removes one notification on the server, then locally.
func (s *Session) Delete(ctx context.Context, id string) error {
	if err := s.facade.DeleteNotification(ctx, id); err != nil {
		return err
	}
	s.store.Delete(id)
	return nil
}

// Notifications returns the store contents, newest first.
func (s *Session) Notifications() []domain.Notification {
	return s.store.List()
}

// UnreadCount returns the local unread counter.
func (s *Session) UnreadCount() int {
	return s.store.UnreadCount()
}
