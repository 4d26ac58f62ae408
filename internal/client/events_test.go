package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pethealth/internal/domain"
)

func TestRoutingTableCoversEveryKind(t *testing.T) {
	for _, kind := range domain.NotificationTypes {
		_, ok := RouteFor(kind)
		assert.True(t, ok, "kind %q has no route", kind)
	}
	assert.Len(t, routes, len(domain.NotificationTypes))
}

func TestRouteForUnknownKind(t *testing.T) {
	_, ok := RouteFor(domain.NotificationType("made_up"))
	assert.False(t, ok)
}

func TestBroadcastKindsNeverEnterStore(t *testing.T) {
	for _, kind := range []domain.NotificationType{
		domain.NotifNewAppointmentBroadcast,
		domain.NotifNewArticle,
		domain.NotifAnnouncement,
	} {
		route, ok := RouteFor(kind)
		assert.True(t, ok)
		assert.False(t, route.Store, "broadcast kind %q must not persist locally", kind)
	}
}

func TestPersonalKindsEnterStore(t *testing.T) {
	broadcast := map[domain.NotificationType]bool{
		domain.NotifNewAppointmentBroadcast: true,
		domain.NotifNewArticle:              true,
		domain.NotifAnnouncement:            true,
	}
	for _, kind := range domain.NotificationTypes {
		if broadcast[kind] {
			continue
		}
		route, _ := RouteFor(kind)
		assert.True(t, route.Store, "personal kind %q must enter the store", kind)
	}
}

func TestRouteAlertStyles(t *testing.T) {
	cases := []struct {
		kind  domain.NotificationType
		style AlertStyle
		sound bool
	}{
		{domain.NotifHealthRecord, AlertNone, false},
		{domain.NotifVaccination, AlertWarning, true},
		{domain.NotifMedication, AlertWarning, true},
		{domain.NotifUrgent, AlertError, true},
		{domain.NotifSystemAlert, AlertError, true},
		{domain.NotifArticlePublished, AlertSuccess, true},
		{domain.NotifNewAppointment, AlertInfo, true},
		{domain.NotifAnnouncement, AlertInfo, true},
		{domain.NotifNewAppointmentBroadcast, AlertNone, false},
		{domain.NotifAppointment, AlertDefault, true},
	}
	for _, tc := range cases {
		route, ok := RouteFor(tc.kind)
		assert.True(t, ok, "kind %q", tc.kind)
		assert.Equal(t, tc.style, route.Alert, "kind %q alert", tc.kind)
		assert.Equal(t, tc.sound, route.Sound, "kind %q sound", tc.kind)
	}
}

func TestPropsForKnownStyles(t *testing.T) {
	for _, style := range []AlertStyle{AlertDefault, AlertInfo, AlertSuccess, AlertWarning, AlertError} {
		props := PropsFor(style)
		assert.NotEmpty(t, props.Icon, "style %q", style)
		assert.NotEmpty(t, props.Color, "style %q", style)
	}
	assert.Empty(t, PropsFor(AlertNone).Icon)
}
