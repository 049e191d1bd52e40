package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/odovalley/odo-valley-api/client/syncmon"
)

const destinationsResource = "destinations"

// Destination mirrors the API's destination payload.
type Destination struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Rating      float64   `json:"rating"`
	Price       string    `json:"price"`
	Color       string    `json:"color"`
	Tags        []string  `json:"tags"`
	Highlights  []string  `json:"highlights"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DestinationForm carries the fields of a create or update. Zero-value
// strings are not submitted, so updates only touch what the caller sets;
// list fields are JSON-encoded the way the admin forms submit them.
type DestinationForm struct {
	Title       string
	Description string
	Price       string
	Rating      string
	Color       string
	ImageURL    string
	Tags        []string
	Highlights  []string
	Featured    *bool
}

func (f DestinationForm) values() (url.Values, error) {
	form := url.Values{}
	setIf := func(key, value string) {
		if value != "" {
			form.Set(key, value)
		}
	}
	setIf("title", f.Title)
	setIf("description", f.Description)
	setIf("price", f.Price)
	setIf("rating", f.Rating)
	setIf("color", f.Color)
	setIf("image", f.ImageURL)
	if f.Featured != nil {
		form.Set("featured", strconv.FormatBool(*f.Featured))
	}
	if f.Tags != nil {
		encoded, err := json.Marshal(f.Tags)
		if err != nil {
			return nil, err
		}
		form.Set("tags", string(encoded))
	}
	if f.Highlights != nil {
		encoded, err := json.Marshal(f.Highlights)
		if err != nil {
			return nil, err
		}
		form.Set("highlights", string(encoded))
	}
	return form, nil
}

// Destinations layers the optimistic cache over the destination endpoints:
// reads consult the staleness tracker and serve the cached blob without any
// network access when it is still fresh; every successful write stamps the
// tracker and refreshes the per-id cache slot.
type Destinations struct {
	client  *Client
	monitor *syncmon.Monitor
	cache   Cache
}

func NewDestinations(client *Client, monitor *syncmon.Monitor, cache Cache) *Destinations {
	return &Destinations{client: client, monitor: monitor, cache: cache}
}

func collectionKey() string {
	return destinationsResource + "_cache"
}

func recordKey(id string) string {
	return destinationsResource + "_" + id + "_cache"
}

// GetAll returns every destination, from cache when fresh. Fetch errors
// propagate and leave the cache untouched.
func (d *Destinations) GetAll(ctx context.Context, forceRefresh bool) ([]Destination, error) {
	if !forceRefresh && !d.monitor.NeedsSync(destinationsResource, syncmon.NeedsSyncOptions{}) {
		if blob, ok, err := d.cache.Get(collectionKey()); err == nil && ok {
			var cached []Destination
			if err := json.Unmarshal(blob, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var destinations []Destination
	if err := d.client.Get(ctx, "/api/destinations", &destinations); err != nil {
		return nil, err
	}

	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{ClearAllPending: true})
	if blob, err := json.Marshal(destinations); err == nil {
		_ = d.cache.Set(collectionKey(), blob)
	}
	return destinations, nil
}

// GetByID returns one destination, from its cache slot when fresh.
func (d *Destinations) GetByID(ctx context.Context, id string, forceRefresh bool) (*Destination, error) {
	if id == "" {
		return nil, fmt.Errorf("destination id is required")
	}

	if !forceRefresh && !d.monitor.NeedsSync(destinationsResource, syncmon.NeedsSyncOptions{ID: id}) {
		if blob, ok, err := d.cache.Get(recordKey(id)); err == nil && ok {
			var cached Destination
			if err := json.Unmarshal(blob, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var dest Destination
	if err := d.client.Get(ctx, "/api/destinations/"+id, &dest); err != nil {
		return nil, err
	}

	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{ID: id})
	if blob, err := json.Marshal(dest); err == nil {
		_ = d.cache.Set(recordKey(id), blob)
	}
	return &dest, nil
}

func (d *Destinations) Create(ctx context.Context, form DestinationForm) (*Destination, error) {
	values, err := form.values()
	if err != nil {
		return nil, err
	}

	var created Destination
	if err := d.client.PostForm(ctx, "/api/destinations", values, &created); err != nil {
		return nil, err
	}

	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{ID: created.ID})
	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{})
	_ = d.cache.Delete(collectionKey())
	if blob, err := json.Marshal(created); err == nil {
		_ = d.cache.Set(recordKey(created.ID), blob)
	}
	return &created, nil
}

func (d *Destinations) Update(ctx context.Context, id string, form DestinationForm) (*Destination, error) {
	if id == "" {
		return nil, fmt.Errorf("destination id is required")
	}
	values, err := form.values()
	if err != nil {
		return nil, err
	}

	d.monitor.RecordPendingChange(destinationsResource, id, "update")

	var updated Destination
	if err := d.client.PutForm(ctx, "/api/destinations/"+id, values, &updated); err != nil {
		return nil, err
	}

	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{ID: id})
	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{})
	_ = d.cache.Delete(collectionKey())
	_ = d.cache.Delete(recordKey(id))
	if blob, err := json.Marshal(updated); err == nil {
		_ = d.cache.Set(recordKey(id), blob)
	}
	return &updated, nil
}

func (d *Destinations) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("destination id is required")
	}

	d.monitor.RecordPendingChange(destinationsResource, id, "delete")

	if err := d.client.Delete(ctx, "/api/destinations/"+id); err != nil {
		return err
	}

	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{ID: id})
	d.monitor.RecordSync(destinationsResource, syncmon.SyncOptions{})
	_ = d.cache.Delete(collectionKey())
	_ = d.cache.Delete(recordKey(id))
	return nil
}

// NeedsSync reports whether the destinations collection should be refetched.
func (d *Destinations) NeedsSync() bool {
	return d.monitor.NeedsSync(destinationsResource, syncmon.NeedsSyncOptions{})
}
