package xlog

import (
	"bytes"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

var (
	_ zapcore.WriteSyncer = (xLogTeeSyncer)(nil)
	_ zapcore.WriteSyncer = (*XMemAsOutSyncer)(nil)
)

type xLogTeeSyncer []zapcore.WriteSyncer

func (tee xLogTeeSyncer) Write(log []byte) (int, error) {
	var err error
	for i := range tee {
		_, werr := tee[i].Write(log)
		err = multierr.Append(err, werr)
	}
	return len(log), err
}

func (tee xLogTeeSyncer) Sync() error {
	var err error
	for i := range tee {
		err = multierr.Append(err, tee[i].Sync())
	}
	return err
}

// XLogTeeSyncer fans every log entry out to all of the given syncers.
func XLogTeeSyncer(syncers ...zapcore.WriteSyncer) zapcore.WriteSyncer {
	return xLogTeeSyncer(syncers)
}

// XMemAsOutSyncer buffers the log entries in memory. Serves for tests
// that assert on the log output.
type XMemAsOutSyncer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (syncer *XMemAsOutSyncer) Write(log []byte) (int, error) {
	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	return syncer.buf.Write(log)
}

func (syncer *XMemAsOutSyncer) Sync() error { return nil }

func (syncer *XMemAsOutSyncer) String() string {
	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	return syncer.buf.String()
}

func (syncer *XMemAsOutSyncer) Reset() {
	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	syncer.buf.Reset()
}
