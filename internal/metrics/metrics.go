// internal/metrics/metrics.go
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dragon-hunter/internal/event"
	"dragon-hunter/internal/logging"
)

const namespace = "dragon_hunter"

// Exporter переводит игровые события в метрики Prometheus.
// Метрики живут в собственном реестре, не в глобальном.
type Exporter struct {
	registry *prometheus.Registry
	subs     []event.Subscription
	bus      *event.Bus
	log      *logging.Logger

	frames        prometheus.Counter
	kills         *prometheus.CounterVec
	segments      prometheus.Counter
	bosses        *prometheus.CounterVec
	damageDealt   prometheus.Counter
	damageTaken   prometheus.Counter
	lootCollected *prometheus.CounterVec
	abilitiesCast *prometheus.CounterVec
	wave          prometheus.Gauge
	lastScore     prometheus.Gauge
	frameTime     prometheus.Histogram
}

// NewExporter создаёт метрики и подписывает их на шину.
func NewExporter(bus *event.Bus) *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		bus:      bus,
		log:      logging.For("metrics"),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frames_total",
			Help: "Simulated frames.",
		}),
		kills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "kills_total",
			Help: "Kills by dragon element.",
		}, []string{"element"}),
		segments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "segments_destroyed_total",
			Help: "Boss segments destroyed.",
		}),
		bosses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bosses_defeated_total",
			Help: "Bosses defeated by element.",
		}, []string{"element"}),
		damageDealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "damage_dealt_total",
			Help: "Damage dealt to dragons.",
		}),
		damageTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "damage_taken_total",
			Help: "Damage taken by the player after shields.",
		}),
		lootCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "loot_collected_total",
			Help: "Loot pickups by type.",
		}, []string{"type"}),
		abilitiesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "abilities_cast_total",
			Help: "Ability casts by id.",
		}, []string{"ability"}),
		wave: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "wave",
			Help: "Current wave.",
		}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_game_score",
			Help: "Score of the last finished game.",
		}),
		frameTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "frame_delta_seconds",
			Help:    "Clamped simulation step.",
			Buckets: []float64{0.004, 0.008, 0.0167, 0.025, 0.0334},
		}),
	}
	e.registry.MustRegister(
		e.frames, e.kills, e.segments, e.bosses, e.damageDealt, e.damageTaken,
		e.lootCollected, e.abilitiesCast, e.wave, e.lastScore, e.frameTime,
	)
	if bus != nil {
		e.subscribe(bus)
	}
	return e
}

func (e *Exporter) subscribe(bus *event.Bus) {
	on := func(t event.EventType, h event.Handler) {
		e.subs = append(e.subs, bus.On(t, h))
	}
	on(event.KillRecorded, func(ev event.Event) {
		if d, ok := ev.Data.(event.KillData); ok {
			e.kills.WithLabelValues(string(d.Element)).Inc()
		}
	})
	on(event.SegmentDestroyed, func(event.Event) { e.segments.Inc() })
	on(event.BossDefeated, func(ev event.Event) {
		if d, ok := ev.Data.(event.BossDefeatedData); ok {
			e.bosses.WithLabelValues(string(d.Element)).Inc()
		}
	})
	on(event.WaveStarted, func(ev event.Event) {
		if d, ok := ev.Data.(event.WaveData); ok {
			e.wave.Set(float64(d.Wave))
		}
	})
	on(event.DamageDealt, func(ev event.Event) {
		if d, ok := ev.Data.(event.DamageData); ok && d.Amount > 0 {
			e.damageDealt.Add(d.Amount)
		}
	})
	on(event.PlayerDamaged, func(ev event.Event) {
		if d, ok := ev.Data.(event.DamageData); ok && d.Amount > 0 {
			e.damageTaken.Add(d.Amount)
		}
	})
	for _, t := range []event.EventType{
		event.LootCollected, event.CurrencyCollected,
		event.AbilityUpgradeCollected, event.RewardBonusCollected,
	} {
		on(t, func(ev event.Event) {
			if d, ok := ev.Data.(event.LootData); ok {
				e.lootCollected.WithLabelValues(string(d.Type)).Inc()
			}
		})
	}
	on(event.AbilityCast, func(ev event.Event) {
		if d, ok := ev.Data.(event.AbilityCastData); ok {
			e.abilitiesCast.WithLabelValues(d.Definition.ID).Inc()
		}
	})
	on(event.GameOver, func(ev event.Event) {
		if score, ok := ev.Data.(int); ok {
			e.lastScore.Set(float64(score))
		}
	})
}

// ObserveFrame учитывает один шаг симуляции.
func (e *Exporter) ObserveFrame(dt float64) {
	e.frames.Inc()
	e.frameTime.Observe(dt)
}

// Registry returns the registry the metrics are registered in.
func (e *Exporter) Registry() *prometheus.Registry { return e.registry }

// Handler отдаёт метрики в формате Prometheus.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// StartHTTP запускает /metrics на addr в отдельной горутине и возвращает сервер,
// чтобы его можно было остановить.
func (e *Exporter) StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		e.log.Infof("prometheus /metrics on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Errorf("metrics server: %v", err)
		}
	}()
	return srv
}

// Close отписывает экспортер от шины.
func (e *Exporter) Close() {
	if e.bus == nil {
		return
	}
	for _, s := range e.subs {
		e.bus.Off(s)
	}
	e.subs = nil
}
