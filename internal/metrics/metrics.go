package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sketchrooms"

// Collector exports room lifecycle counters. It satisfies game.Stats.
type Collector struct {
	registry *prometheus.Registry

	roomsOpen     prometheus.Gauge
	roomsTotal    prometheus.Counter
	playersOnline prometheus.Gauge
	joinsTotal    prometheus.Counter
	rejections    *prometheus.CounterVec
	rounds        *prometheus.CounterVec
	gamesFinished prometheus.Counter
	droppedConns  prometheus.Counter
}

func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		roomsOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_open",
			Help:      "Rooms currently registered.",
		}),
		roomsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Rooms created since start.",
		}),
		playersOnline: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_online",
			Help:      "Players currently seated in a room.",
		}),
		joinsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "joins_total",
			Help:      "Successful room joins.",
		}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "join_rejections_total",
			Help:      "Refused joins by reason.",
		}, []string{"reason"}),
		rounds: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_resolved_total",
			Help:      "Resolved rounds by outcome.",
		}, []string{"outcome"}),
		gamesFinished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached game over.",
		}),
		droppedConns: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slow_clients_dropped_total",
			Help:      "Connections closed because their send queue overflowed.",
		}),
	}
}

func (c *Collector) RoomOpened() {
	c.roomsOpen.Inc()
	c.roomsTotal.Inc()
}

func (c *Collector) RoomClosed() { c.roomsOpen.Dec() }

func (c *Collector) PlayerJoined() {
	c.playersOnline.Inc()
	c.joinsTotal.Inc()
}

func (c *Collector) PlayerLeft()                  { c.playersOnline.Dec() }
func (c *Collector) JoinRejected(reason string)   { c.rejections.WithLabelValues(reason).Inc() }
func (c *Collector) RoundResolved(outcome string) { c.rounds.WithLabelValues(outcome).Inc() }
func (c *Collector) GameFinished()                { c.gamesFinished.Inc() }

// SlowClientDropped is reported by the transport.
func (c *Collector) SlowClientDropped() { c.droppedConns.Inc() }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry is the gatherer behind Handler.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
