package spamlist

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/vmmuthu31/ChainWatchdog-sub000/pkg/chains"
)

// ListKind separates the two datasets maintained per chain.
type ListKind string

const (
	KindToken ListKind = "tokens"
	KindNFT   ListKind = "nft"
)

// ErrUnsupportedChain is returned when a chain has no spam dataset. A
// caller must surface this as "not checkable", never as "safe".
var ErrUnsupportedChain = errors.New("no spam dataset for chain")

// Entry is one parsed dataset line: <metadata>/<contractAddress>/<score>.
type Entry struct {
	Metadata string
	Address  string // stored lowercased
	Score    int
}

// Hit describes a confirmed spam-list match.
type Hit struct {
	Chain chains.Chain
	Kind  ListKind
	Entry Entry
}

// Lookup answers spam queries against the per-chain static datasets.
// Datasets are fetched lazily and cached for the lifetime of the process;
// concurrent first-use fetches of the same list are collapsed through a
// singleflight group.
type Lookup struct {
	baseURL string
	client  *http.Client

	mu     sync.RWMutex
	cache  map[string][]Entry // key: slug + "/" + kind
	flight singleflight.Group
}

func New(baseURL string, timeout time.Duration) *Lookup {
	return &Lookup{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   make(map[string][]Entry),
	}
}

// Checkable reports whether a spam dataset exists for the chain.
func (l *Lookup) Checkable(chain chains.Chain) bool {
	for _, c := range chains.SpamListChains() {
		if c == chain {
			return true
		}
	}
	return false
}

// IsSpam checks the address against both of the chain's datasets. A fetch
// or parse failure degrades to "no match"; the list being unavailable is
// never treated as confirmation either way.
func (l *Lookup) IsSpam(ctx context.Context, address string, chain chains.Chain) (*Hit, error) {
	if !l.Checkable(chain) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChain, chain)
	}

	needle := strings.ToLower(strings.TrimSpace(address))
	for _, kind := range []ListKind{KindToken, KindNFT} {
		entries, err := l.entries(ctx, chain, kind)
		if err != nil {
			log.Warn().Err(err).Str("chain", string(chain)).Str("kind", string(kind)).
				Msg("spam dataset unavailable, treating as no match")
			continue
		}
		for _, e := range entries {
			if e.Address == needle {
				return &Hit{Chain: chain, Kind: kind, Entry: e}, nil
			}
		}
	}
	return nil, nil
}

// FindAcrossAllChains probes every covered chain in order and returns the
// first hit. found=false means no covered chain listed the address; it
// says nothing about chains outside the coverage set.
func (l *Lookup) FindAcrossAllChains(ctx context.Context, address string) (chains.Chain, *Hit, bool) {
	for _, chain := range chains.SpamListChains() {
		hit, err := l.IsSpam(ctx, address, chain)
		if err != nil {
			continue
		}
		if hit != nil {
			return chain, hit, true
		}
	}
	return "", nil, false
}

// Refresh drops the cache so the next lookup re-fetches the datasets. The
// datasets are externally maintained; this is the reload hook for the
// periodic refresh job.
func (l *Lookup) Refresh() {
	l.mu.Lock()
	l.cache = make(map[string][]Entry)
	l.mu.Unlock()
	log.Info().Msg("spam dataset cache cleared")
}

func (l *Lookup) entries(ctx context.Context, chain chains.Chain, kind ListKind) ([]Entry, error) {
	key := chain.Slug() + "/" + string(kind)

	l.mu.RLock()
	cached, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := l.flight.Do(key, func() (interface{}, error) {
		entries, err := l.fetch(ctx, chain, kind)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = entries
		l.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

func (l *Lookup) fetch(ctx context.Context, chain chains.Chain, kind ListKind) ([]Entry, error) {
	url := fmt.Sprintf("%s/%s/%s.txt", l.baseURL, chain.Slug(), kind)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	var entries []Entry
	scanner := bufio.NewScanner(io.LimitReader(resp.Body, 10<<20))
	for scanner.Scan() {
		if e, ok := parseEntry(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Debug().Str("chain", string(chain)).Str("kind", string(kind)).
		Int("entries", len(entries)).Msg("spam dataset loaded")
	return entries, nil
}

// parseEntry splits a <metadata>/<address>/<score> line. The address
// segment is lowercased once here so matching is case-insensitive. A
// missing or unparseable score defaults to 0; malformed lines are skipped.
func parseEntry(line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	parts := strings.Split(line, "/")
	if len(parts) < 2 {
		return Entry{}, false
	}

	e := Entry{
		Metadata: parts[0],
		Address:  strings.ToLower(strings.TrimSpace(parts[1])),
	}
	if e.Address == "" {
		return Entry{}, false
	}
	if len(parts) >= 3 {
		if score, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			e.Score = score
		}
	}
	return e, true
}
