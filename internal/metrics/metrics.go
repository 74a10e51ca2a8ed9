package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ticketdesk/internal/model"
)

const namespace = "ticketdesk"

// Recorder counts ticket lifecycle activity. A nil *Recorder records nothing.
type Recorder struct {
	ticketsCreated prometheus.Counter
	ticketsDeleted prometheus.Counter
	timelineEvents *prometheus.CounterVec
	handler        http.Handler
}

// NewRecorder registers the ticketdesk collectors, plus the Go runtime and
// process collectors, on reg.
func NewRecorder(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		ticketsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets created.",
		}),
		ticketsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_deleted_total",
			Help:      "Tickets deleted.",
		}),
		timelineEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timeline_events_total",
			Help:      "Timeline events recorded, by type.",
		}, []string{"type"}),
	}
	reg.MustRegister(
		r.ticketsCreated,
		r.ticketsDeleted,
		r.timelineEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return r.handler
}

// TicketCreated counts one created ticket.
func (r *Recorder) TicketCreated() {
	if r == nil {
		return
	}
	r.ticketsCreated.Inc()
}

// TicketDeleted counts one deleted ticket.
func (r *Recorder) TicketDeleted() {
	if r == nil {
		return
	}
	r.ticketsDeleted.Inc()
}

// TimelineEvents counts persisted timeline events by type.
func (r *Recorder) TimelineEvents(events []model.TimelineEvent) {
	if r == nil {
		return
	}
	for _, e := range events {
		r.timelineEvents.WithLabelValues(string(e.Type)).Inc()
	}
}
