package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/petr-muller/tixboard/internal/board"
)

// Loader fetches a snapshot of tickets and users
type Loader interface {
	Load(ctx context.Context) (board.Dataset, error)
}

// LoadOnce runs the loader a single time. On failure the error is logged and
// an empty dataset is returned; there is no retry.
func LoadOnce(ctx context.Context, loader Loader) board.Dataset {
	data, err := loader.Load(ctx)
	if err != nil {
		logrus.WithError(err).Error("Error fetching data")
		return board.Dataset{}
	}

	logrus.WithFields(logrus.Fields{
		"tickets": len(data.Tickets),
		"users":   len(data.Users),
	}).Debug("Fetched board data")
	return data
}

// HTTPSource fetches the dataset from a JSON endpoint
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSource creates a loader for endpoint. A nil client uses http.DefaultClient.
func NewHTTPSource(endpoint string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{endpoint: endpoint, client: client}
}

// Load issues a single GET request and decodes the response body
func (s *HTTPSource) Load(ctx context.Context) (board.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return board.Dataset{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return board.Dataset{}, fmt.Errorf("failed to fetch %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return board.Dataset{}, fmt.Errorf("unexpected response from %s: %s: %s", s.endpoint, resp.Status, body)
	}

	return decode(resp.Body)
}

// FileSource reads the dataset from a local JSON file with the endpoint's shape
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) (board.Dataset, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return board.Dataset{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	return decode(f)
}

// decode reads the endpoint payload. Tickets and users that do not decode
// are logged and skipped so the rest of the board still shows.
func decode(r io.Reader) (board.Dataset, error) {
	var raw struct {
		Tickets []json.RawMessage `json:"tickets"`
		Users   []json.RawMessage `json:"users"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return board.Dataset{}, fmt.Errorf("failed to decode board data: %w", err)
	}

	var data board.Dataset
	if raw.Tickets != nil {
		data.Tickets = make([]board.Ticket, 0, len(raw.Tickets))
	}
	for i, item := range raw.Tickets {
		var ticket board.Ticket
		if err := json.Unmarshal(item, &ticket); err != nil {
			logrus.WithError(err).WithField("index", i).Warn("Skipping ticket that cannot be decoded")
			continue
		}
		data.Tickets = append(data.Tickets, ticket)
	}

	if raw.Users != nil {
		data.Users = make([]board.User, 0, len(raw.Users))
	}
	for i, item := range raw.Users {
		var user board.User
		if err := json.Unmarshal(item, &user); err != nil {
			logrus.WithError(err).WithField("index", i).Warn("Skipping user that cannot be decoded")
			continue
		}
		data.Users = append(data.Users, user)
	}

	return data, nil
}
