package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Client agrupa as métricas do lado cliente: chamadas ao backend e transições de sessão
type Client struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	activity    *prometheus.CounterVec
	wsClients   prometheus.Gauge
}

// NewClient registra os coletores no registerer informado
func NewClient(reg prometheus.Registerer) *Client {
	c := &Client{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paris_api_requests_total",
			Help: "chamadas ao backend por operação e status HTTP",
		}, []string{"op", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paris_api_request_duration_seconds",
			Help:    "latência das chamadas ao backend",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paris_session_transitions_total",
			Help: "transições de estado da sessão",
		}, []string{"to", "reason"}),
		activity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "paris_activity_events_total",
			Help: "eventos de atividade publicados no Kafka",
		}, []string{"kind", "result"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "paris_ws_clients",
			Help: "conexões websocket abertas no servidor local",
		}),
	}
	reg.MustRegister(c.requests, c.latency, c.transitions, c.activity, c.wsClients)
	return c
}

// ObserveRequest tem a assinatura do hook OnRequest do cliente da API.
// status 0 significa falha de transporte (sem resposta HTTP).
func (c *Client) ObserveRequest(op string, status int, elapsed time.Duration) {
	code := "transport_error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	c.requests.WithLabelValues(op, code).Inc()
	c.latency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveTransition conta uma transição de sessão
func (c *Client) ObserveTransition(to, reason string) {
	c.transitions.WithLabelValues(to, reason).Inc()
}

// ActivityPublished e ActivityFailed têm a assinatura dos hooks do publisher Kafka
func (c *Client) ActivityPublished(kind string) {
	c.activity.WithLabelValues(kind, "ok").Inc()
}

func (c *Client) ActivityFailed(kind string) {
	c.activity.WithLabelValues(kind, "error").Inc()
}

// ActivityDropped conta eventos descartados com a fila de publicação cheia
func (c *Client) ActivityDropped(kind string) {
	c.activity.WithLabelValues(kind, "dropped").Inc()
}

// SetWSClients atualiza o número de conexões websocket
func (c *Client) SetWSClients(n int) {
	c.wsClients.Set(float64(n))
}
