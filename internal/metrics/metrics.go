package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProfilesIngested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_profiles_total",
		Help: "Profiles processed, by outcome",
	}, []string{"status"})
	PostsUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_posts_upserted_total",
		Help: "Posts written to the document store",
	})
	CommentFetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingest_comment_fetch_failures_total",
		Help: "Posts stored without comments because the comment fetch failed",
	})
	TweetsStored = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_tweets_total",
		Help: "Tweets handed to the store, by result",
	}, []string{"result"})
	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_run_duration_seconds",
		Help:    "Duration of one ingestion run",
		Buckets: prometheus.DefBuckets,
	}, []string{"pipeline"})
)

func init() {
	prometheus.MustRegister(ProfilesIngested, PostsUpserted, CommentFetchFailures, TweetsStored, RunDuration)
}

// ObserveRun records how long a pipeline run took.
func ObserveRun(pipeline string, start time.Time) {
	RunDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}
