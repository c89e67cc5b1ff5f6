package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MessagesSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relink_messages_seen_total",
		Help: "Channel posts observed across all chats",
	})
	MessagesMatched = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relink_messages_matched_total",
		Help: "Watched-channel posts containing the detection text",
	})
	MessagesRewritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relink_messages_rewritten_total",
		Help: "Messages replaced with rewritten links",
	})
	LinksRewritten = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relink_links_rewritten_total",
		Help: "Individual internal links rewritten",
	})
	PipelineErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "relink_pipeline_errors_total",
		Help: "Delete or send failures during message replacement",
	})
)

// MustRegister registers all pipeline metrics with the given registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		MessagesSeen,
		MessagesMatched,
		MessagesRewritten,
		LinksRewritten,
		PipelineErrors,
	)
}
