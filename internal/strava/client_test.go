package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClientWithHTTP(srv.Client())
	c.BaseURL = srv.URL
	return c, srv
}

func TestGetActivities(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %s, want 100", got)
		}
		w.Header().Set("X-RateLimit-Limit", "100,1000")
		w.Header().Set("X-RateLimit-Usage", "7,42")
		json.NewEncoder(w).Encode([]Activity{
			{ID: 1, Name: "Morning Run", Type: "Run", SportType: "Run", MovingTime: 1800, Distance: 5000},
		})
	}))
	defer srv.Close()

	activities, err := c.GetActivities(context.Background(), time.Time{}, 1, 100)
	if err != nil {
		t.Fatalf("GetActivities: %v", err)
	}
	if len(activities) != 1 || activities[0].Name != "Morning Run" {
		t.Errorf("activities = %+v", activities)
	}

	short, daily := c.RateLimitStatus()
	if short != 93 || daily != 958 {
		t.Errorf("rate limit remaining = %d/%d, want 93/958", short, daily)
	}
}

func TestGetAllActivitiesPaginates(t *testing.T) {
	// Two full pages then a short one
	pageSizes := map[int]int{1: 100, 2: 100, 3: 17}

	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		n := pageSizes[page]
		activities := make([]Activity, n)
		for i := range activities {
			activities[i] = Activity{ID: int64(page*1000 + i)}
		}
		json.NewEncoder(w).Encode(activities)
	}))
	defer srv.Close()

	var progress []int
	activities, err := c.GetAllActivities(context.Background(), time.Time{}, func(fetched int) {
		progress = append(progress, fetched)
	})
	if err != nil {
		t.Fatalf("GetAllActivities: %v", err)
	}
	if len(activities) != 217 {
		t.Errorf("fetched %d activities, want 217", len(activities))
	}
	if len(progress) != 3 || progress[2] != 217 {
		t.Errorf("progress callbacks = %v", progress)
	}
}

func TestGetActivitiesUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(fmt.Sprintf("status %d", status), func(t *testing.T) {
			c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"message":"Authorization Error"}`, status)
			}))
			defer srv.Close()

			_, err := c.GetActivities(context.Background(), time.Time{}, 1, 100)
			if !errors.Is(err, ErrUnauthorized) {
				t.Errorf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestGetActivitiesServerError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.GetActivities(context.Background(), time.Time{}, 1, 100)
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Error("a 500 must not read as an auth failure")
	}
}
