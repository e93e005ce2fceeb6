package destination

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/commons-repost/attribution"
	"github.com/teranos/commons-repost/errors"
	"github.com/teranos/commons-repost/logger"
	"github.com/teranos/commons-repost/media"
	"github.com/teranos/commons-repost/textlen"
)

// Request is one Commons file to be reposted.
type Request struct {
	Source      attribution.Source
	Description string
	// Image is optional; a zero asset skips scaling
	Image media.ImageAsset
}

// Result is a Request shaped for one destination.
type Result struct {
	Destination string               `json:"destination"`
	Attribution attribution.Document `json:"attribution"`
	Description string               `json:"description"`
	AltText     string               `json:"alt_text"`
	Image       media.ImageAsset     `json:"-"`
}

// Preparer shapes requests for a set of destinations.
type Preparer struct {
	scaler *media.Scaler
	logger *zap.SugaredLogger
}

// NewPreparer returns a Preparer logging to log (nop when nil).
func NewPreparer(log *zap.SugaredLogger, scaler *media.Scaler) *Preparer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if scaler == nil {
		scaler = media.NewScaler(log.Named("media"))
	}
	return &Preparer{scaler: scaler, logger: log}
}

// Prepare composes the attribution, cuts the description and scales the
// image for every destination concurrently. Results are in the order of
// dests. The first failure cancels the destinations not yet started and is
// returned wrapped with the destination name.
func (p *Preparer) Prepare(ctx context.Context, req Request, dests []Destination) ([]Result, error) {
	results := make([]Result, len(dests))

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range dests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := p.prepareOne(logger.WithDestination(gctx, d.Name), req, d)
			if err != nil {
				return errors.Wrapf(err, "destination %s", d.Name)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Preparer) prepareOne(ctx context.Context, req Request, d Destination) (Result, error) {
	start := time.Now()
	log := p.logger.With(logger.FieldsFromContext(ctx)...)

	doc, err := attribution.Compose(req.Source, d.Attribution)
	if err != nil {
		return Result{}, err
	}
	if err := doc.Validate(policyOf(d)); err != nil {
		return Result{}, errors.Wrap(err, "attribution links")
	}

	log.Debugw("Composed attribution",
		logger.FieldLength, policyOf(d).Len(doc.Text),
		logger.FieldMaxLength, d.Attribution.MaxLength,
		logger.FieldEntries, len(doc.Entries),
		logger.FieldLinks, len(doc.Links))

	res := Result{
		Destination: d.Name,
		Attribution: doc,
		Description: cut(req.Description, d.DescriptionMaxLength),
		AltText:     cut(req.Description, d.AltTextMaxLength),
	}

	if len(req.Image.Data) > 0 {
		scaled, err := p.scaler.Scale(req.Image, d.Budget)
		if err != nil {
			return Result{}, err
		}
		res.Image = scaled
	}

	log.Infow("Prepared destination",
		logger.FieldSize, res.Image.Size(),
		logger.FieldMIMEType, res.Image.MIMEType,
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return res, nil
}

func policyOf(d Destination) textlen.Policy {
	if d.Attribution.Policy == nil {
		return textlen.UTF8Bytes{}
	}
	return d.Attribution.Policy
}

// cut truncates s to max characters; 0 leaves it whole
func cut(s string, max int) string {
	if max <= 0 {
		return s
	}
	return textlen.Truncate(textlen.Runes{}, s, max)
}
