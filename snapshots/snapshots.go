// Package snapshots persists wire-encoded multimaps to a simpleblob storage
// backend. Snapshots are immutable, timestamped, gzip-compressed blobs; the
// newest valid one is the current state of a named table.
package snapshots

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/PowerDNS/simpleblob"
	"github.com/c2h5oh/datasize"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/PowerDNS/multimap"
	"github.com/PowerDNS/multimap/wire"
)

// ErrNoSnapshots is returned by LoadLatest when the store holds no valid
// snapshot for the prefix.
var ErrNoSnapshots = errors.New("no snapshots found")

// SaveStats describes one Save call.
type SaveStats struct {
	RawSize        datasize.ByteSize // encoded size before compression
	CompressedSize datasize.ByteSize // stored blob size
	TEncode        time.Duration     // encode plus compress time
	TStore         time.Duration     // storage backend time
}

// Snapshotter saves and loads multimap snapshots under one name prefix.
// It is safe for concurrent use as long as the underlying storage is.
type Snapshotter[K comparable, V comparable] struct {
	st     simpleblob.Interface
	prefix string
	keys   wire.Codec[K]
	values wire.Codec[V]
	l      logrus.FieldLogger

	// now is replaced in tests for deterministic names
	now func() time.Time
}

// New returns a Snapshotter storing snapshots as "<prefix>__<timestamp>.mm.gz"
// in st. The prefix must be non-empty and must not contain "__", "/" or ".".
func New[K comparable, V comparable](st simpleblob.Interface, prefix string, keys wire.Codec[K], values wire.Codec[V]) (*Snapshotter[K, V], error) {
	if st == nil {
		return nil, errors.New("nil storage backend")
	}
	if prefix == "" || strings.ContainsAny(prefix, "/.") || strings.Contains(prefix, "__") {
		return nil, errors.Errorf("invalid snapshot prefix: %q", prefix)
	}
	return &Snapshotter[K, V]{
		st:     st,
		prefix: prefix,
		keys:   keys,
		values: values,
		l:      logrus.WithField("component", "snapshots").WithField("prefix", prefix),
		now:    time.Now,
	}, nil
}

// Save encodes, compresses and stores m under a fresh timestamped name.
func (s *Snapshotter[K, V]) Save(ctx context.Context, m *multimap.Multimap[K, V]) (NameInfo, SaveStats, error) {
	var stats SaveStats
	metricSaveCalls.Inc()

	t0 := time.Now()
	out := bytes.NewBuffer(make([]byte, 0, 4*1024))
	gw, err := gzip.NewWriterLevel(out, gzip.BestSpeed)
	if err != nil {
		metricSaveFailed.Inc()
		return NameInfo{}, stats, err
	}
	cw := &countingWriter{w: gw}
	if err := wire.Encode(cw, m, s.keys, s.values); err != nil {
		metricSaveFailed.Inc()
		return NameInfo{}, stats, errors.Wrap(err, "encode snapshot")
	}
	if err := gw.Close(); err != nil {
		metricSaveFailed.Inc()
		return NameInfo{}, stats, err
	}
	stats.RawSize = datasize.ByteSize(cw.n)
	stats.CompressedSize = datasize.ByteSize(out.Len())
	stats.TEncode = time.Since(t0)

	name := Name(s.prefix, s.now())
	t1 := time.Now()
	if err := s.st.Store(ctx, name, out.Bytes()); err != nil {
		metricSaveFailed.Inc()
		return NameInfo{}, stats, errors.Wrap(err, "store snapshot")
	}
	stats.TStore = time.Since(t1)

	ni, err := ParseName(name)
	if err != nil {
		// Name and ParseName disagreeing is a bug, not an input error
		return NameInfo{}, stats, err
	}

	s.l.WithFields(logrus.Fields{
		"filename":        name,
		"entries":         m.Len(),
		"raw_size":        stats.RawSize,
		"compressed_size": stats.CompressedSize,
		"time_encode":     stats.TEncode.Round(time.Millisecond),
		"time_store":      stats.TStore.Round(time.Millisecond),
	}).Debug("Snapshot stored")
	return ni, stats, nil
}

// Load fetches the named snapshot and decodes it. Decode validation
// failures surface as wire.ErrInvalidFormat errors.
func (s *Snapshotter[K, V]) Load(ctx context.Context, name string) (*multimap.Multimap[K, V], error) {
	metricLoadCalls.Inc()

	data, err := s.st.Load(ctx, name)
	if err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrap(err, "load snapshot")
	}
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrap(err, "gzip snapshot")
	}
	m, err := wire.Decode(gr, s.keys, s.values)
	if err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrapf(err, "decode snapshot %s", name)
	}
	// Drain to verify the gzip checksum before trusting the contents
	if _, err := io.Copy(io.Discard, gr); err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrap(err, "gzip snapshot")
	}
	if err := gr.Close(); err != nil {
		metricLoadFailed.Inc()
		return nil, errors.Wrap(err, "gzip snapshot")
	}
	return m, nil
}

// List returns the valid snapshots for the prefix, oldest first. Blobs with
// unparseable names are skipped with a debug log, like any other foreign
// file in the storage bucket.
func (s *Snapshotter[K, V]) List(ctx context.Context) ([]NameInfo, error) {
	metricListCalls.Inc()

	ls, err := s.st.List(ctx, s.prefix+"__")
	if err != nil {
		metricListFailed.Inc()
		return nil, err
	}

	infos := make([]NameInfo, 0, len(ls))
	for _, name := range ls.Names() {
		ni, err := ParseName(name)
		if err != nil {
			s.l.WithError(err).WithField("filename", name).
				Debug("Skipping invalid filename")
			continue
		}
		infos = append(infos, ni)
	}
	slices.SortFunc(infos, func(a, b NameInfo) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return infos, nil
}

// LoadLatest loads the newest valid snapshot. It returns ErrNoSnapshots
// when none exists.
func (s *Snapshotter[K, V]) LoadLatest(ctx context.Context) (*multimap.Multimap[K, V], NameInfo, error) {
	infos, err := s.List(ctx)
	if err != nil {
		return nil, NameInfo{}, err
	}
	if len(infos) == 0 {
		return nil, NameInfo{}, ErrNoSnapshots
	}
	ni := infos[len(infos)-1]
	m, err := s.Load(ctx, ni.FullName)
	if err != nil {
		return nil, NameInfo{}, err
	}
	return m, ni, nil
}

// Prune deletes all but the newest keep snapshots and returns how many
// were removed. It stops at the first delete error.
func (s *Snapshotter[K, V]) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, errors.Errorf("negative keep count: %d", keep)
	}
	infos, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(infos) <= keep {
		return 0, nil
	}
	removed := 0
	for _, ni := range infos[:len(infos)-keep] {
		metricDeleteCalls.Inc()
		if err := s.st.Delete(ctx, ni.FullName); err != nil {
			metricDeleteFailed.Inc()
			return removed, errors.Wrapf(err, "delete snapshot %s", ni.FullName)
		}
		s.l.WithField("filename", ni.FullName).Debug("Snapshot removed")
		removed++
	}
	return removed, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
