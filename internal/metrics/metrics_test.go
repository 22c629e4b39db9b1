package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByStatusClass(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/weight", "4xx"))

	ObserveRequest("GET", "/api/weight", 404, 5*time.Millisecond)
	ObserveRequest("GET", "/api/weight", 401, 5*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/weight", "4xx"))
	if after-before != 2 {
		t.Fatalf("expected two 4xx observations, got %v", after-before)
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 201: "2xx", 302: "3xx", 409: "4xx", 503: "5xx"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Fatalf("statusClass(%d) = %s, want %s", status, got, want)
		}
	}
}
