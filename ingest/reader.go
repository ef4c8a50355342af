package ingest

import (
	"go.uber.org/zap"

	"github.com/svyio/statio"
	"github.com/svyio/statio/engine"
)

// Read drives one parse traversal of p and returns the columnar payload and
// metadata record.
//
// A non-success code from the engine is not an error when the row cap was
// already satisfied: aborting the traversal is how the cap is enforced.
func Read(p engine.Parser, format statio.Format, opts Options) ([]byte, *statio.Metadata, error) {
	if p == nil {
		return nil, nil, statio.ErrEngineInit
	}
	c := NewContext(format, opts)
	if err := runParse(p, c); err != nil {
		return nil, nil, err
	}
	return c.Finalize()
}

// ReadWithCatalog reads a data file together with a separate label catalog
// (the SAS data + catalog pairing).  Only value labels come out of the
// catalog pass; a catalog failure is logged and never aborts the data parse.
func ReadWithCatalog(data, catalog engine.Parser, format statio.Format, opts Options) ([]byte, *statio.Metadata, error) {
	if data == nil {
		return nil, nil, statio.ErrEngineInit
	}
	c := NewContext(format, opts)
	if catalog != nil {
		code := catalog.Parse(engine.Handlers{ValueLabel: c.onValueLabel})
		if code != engine.OK && code != engine.UserAbort {
			logger := opts.Logger
			if logger == nil {
				logger = zap.NewNop()
			}
			logger.Warn("catalog parse failed; continuing without value labels",
				zap.Int("code", int(code)))
		}
	}
	if err := runParse(data, c); err != nil {
		return nil, nil, err
	}
	return c.Finalize()
}

func runParse(p engine.Parser, c *Context) error {
	code := p.Parse(c.Handlers())
	if code == engine.OK || code == engine.UserAbort {
		return nil
	}
	if c.maxRows > 0 && c.rowsEmitted >= c.maxRows {
		// The cap was reached before the engine gave up; treat as success.
		return nil
	}
	return &statio.ParseError{Code: code, Message: c.lastErr}
}
