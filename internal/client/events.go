package client

import "pethealth/internal/domain"

// AlertStyle picks the rendering of a transient alert.
type AlertStyle string

const (
	AlertNone    AlertStyle = ""
	AlertDefault AlertStyle = "default"
	AlertInfo    AlertStyle = "info"
	AlertSuccess AlertStyle = "success"
	AlertWarning AlertStyle = "warning"
	AlertError   AlertStyle = "error"
)

// StyleProps is the per-style rendering data (icon and color).
type StyleProps struct {
	Icon  string
	Color string
}

var styleProps = map[AlertStyle]StyleProps{
	AlertDefault: {Icon: "🔔", Color: "blue"},
	AlertInfo:    {Icon: "ℹ️", Color: "cyan"},
	AlertSuccess: {Icon: "✅", Color: "green"},
	AlertWarning: {Icon: "⚠️", Color: "yellow"},
	AlertError:   {Icon: "🚨", Color: "red"},
}

// PropsFor returns the rendering data for a style.
func PropsFor(s AlertStyle) StyleProps {
	return styleProps[s]
}

// Route describes what the transport does with one event kind:
// whether the record enters the store, which alert to show, and
// whether the alert carries a sound.
type Route struct {
	Store bool
	Alert AlertStyle
	Sound bool
}

// routes is the closed dispatch table over every notification kind.
// Broadcast kinds are display-only: no store mutation.
var routes = map[domain.NotificationType]Route{
	domain.NotifAppointment:   {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifVetResponse:   {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifNutritionPlan: {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifHealthRecord:  {Store: true, Alert: AlertNone},
	domain.NotifVaccination:   {Store: true, Alert: AlertWarning, Sound: true},
	domain.NotifMedication:    {Store: true, Alert: AlertWarning, Sound: true},

	domain.NotifNewAppointment:       {Store: true, Alert: AlertInfo, Sound: true},
	domain.NotifAppointmentCancelled: {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifAppointmentUpdated:   {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifUrgent:               {Store: true, Alert: AlertError, Sound: true},
	domain.NotifArticlePublished:     {Store: true, Alert: AlertSuccess, Sound: true},

	domain.NotifNewUser:           {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifNewVetApplication: {Store: true, Alert: AlertWarning, Sound: true},
	domain.NotifArticlePending:    {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifNutritionPending:  {Store: true, Alert: AlertDefault, Sound: true},
	domain.NotifSystemAlert:       {Store: true, Alert: AlertError, Sound: true},
	domain.NotifUserReport:        {Store: true, Alert: AlertWarning, Sound: true},

	domain.NotifNewAppointmentBroadcast: {Store: false, Alert: AlertNone},
	domain.NotifNewArticle:              {Store: false, Alert: AlertDefault, Sound: true},
	domain.NotifAnnouncement:            {Store: false, Alert: AlertInfo, Sound: true},
}

// RouteFor looks an event kind up in the dispatch table.
func RouteFor(t domain.NotificationType) (Route, bool) {
	r, ok := routes[t]
	return r, ok
}

// Alerter receives transient alerts for push events. Implementations
// render a toast, ring a terminal bell, or just record the call.
type Alerter interface {
	Alert(style AlertStyle, sound bool, n domain.Notification)
}
