package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mytheresa/balanco-mensal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NoQuantityMessage is the warning shown when every sector is left at zero.
const NoQuantityMessage = "Informe ao menos uma quantidade maior que zero."

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrNoQuantity      = errors.New(NoQuantityMessage)
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownSector   = errors.New("unknown sector")
)

// Repository persists the whole ledger at once.
type Repository interface {
	Load(ctx context.Context) (*models.Ledger, error)
	Save(ctx context.Context, l *models.Ledger) error
}

// Submission is one press of the form's submit button. Editing names the product
// the form was opened to edit; it is empty for a plain add.
type Submission struct {
	Name       string
	Quantities models.Quantities
	Editing    string
}

// Controller owns the authoritative ledger and the edit state. Every mutation runs
// under one lock: read the ledger, change a copy, save it, then swap it in.
type Controller struct {
	mu      sync.Mutex
	repo    Repository
	catalog *models.Catalog
	ledger  *models.Ledger
	state   EditState
}

// NewController loads the stored ledger. A corrupt stored ledger is logged and
// replaced by an empty one; any other load error is returned.
func NewController(ctx context.Context, repo Repository, catalog *models.Catalog) (*Controller, error) {
	l, err := repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, models.ErrCorruptLedger) {
			return nil, fmt.Errorf("load ledger: %w", err)
		}
		zap.L().Warn("stored ledger is unreadable, starting empty", zap.Error(err))
		l = nil
	}
	if l == nil {
		l = models.NewLedger()
	}

	return &Controller{
		repo:    repo,
		catalog: catalog,
		ledger:  l,
	}, nil
}

func (c *Controller) Catalog() *models.Catalog {
	return c.catalog
}

// Snapshot returns a copy of the current ledger for rendering.
func (c *Controller) Snapshot() *models.Ledger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Clone()
}

func (c *Controller) State() EditState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Form returns the entry form for the current state: empty when Idle, pre-filled with
// the product's quantities when Editing.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formLocked()
}

func (c *Controller) formLocked() Form {
	if !c.state.IsEditing() {
		return emptyForm()
	}
	rec, ok := c.ledger.Find(c.state.Product())
	if !ok {
		rec = models.ProductRecord{Name: c.state.Product()}
	}
	return editForm(rec, c.catalog)
}

// ParseSubmission turns raw form values keyed by sector into a Submission.
// Sectors missing from raw count as zero; unknown keys are ignored.
func (c *Controller) ParseSubmission(name string, raw map[models.SectorID]string) Submission {
	q := make(models.Quantities, len(raw))
	for _, s := range c.catalog.Sectors() {
		q[s.ID] = models.ParseQuantity(s, raw[s.ID])
	}
	return Submission{Name: name, Quantities: q}
}

// Submit applies a form submission. The quantities replace the product's record,
// zeros included, only when the submission carries the product currently in
// Editing; the controller then returns to Idle. Any other submission is summed in
// and leaves the edit state alone.
func (c *Controller) Submit(ctx context.Context, sub Submission) (models.ProductRecord, error) {
	name := models.NormalizeProductName(sub.Name)
	if name == "" {
		return models.ProductRecord{}, ErrEmptyName
	}

	q := make(models.Quantities, len(sub.Quantities))
	for id, v := range sub.Quantities {
		if _, ok := c.catalog.Lookup(id); !ok {
			return models.ProductRecord{}, fmt.Errorf("%w: %s", ErrUnknownSector, id)
		}
		if v.IsPositive() {
			q[id] = v
		}
	}
	if len(q) == 0 {
		return models.ProductRecord{}, ErrNoQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.ledger.Clone()
	replace := c.editsTarget(sub.Editing)
	if replace {
		c.applyEdit(next, name, q)
	} else {
		next.Add(name, q)
	}

	if err := c.repo.Save(ctx, next); err != nil {
		zap.L().Error("failed to save ledger", zap.String("product", name), zap.Error(err))
		return models.ProductRecord{}, err
	}
	c.ledger = next
	if replace {
		c.state = Idle()
	}

	rec, _ := next.Find(name)
	zap.L().Info("product submitted",
		zap.String("product", rec.Name),
		zap.Bool("replace", replace),
		zap.Int("records", next.Len()))
	return rec, nil
}

// editsTarget reports whether target is the product currently being edited.
func (c *Controller) editsTarget(target string) bool {
	return c.state.IsEditing() && models.NameKey(target) == models.NameKey(c.state.Product())
}

// applyEdit writes the edited product's quantities into next. Saving under a
// different name renames the product; when that name already belongs to another
// record, only the submitted positive sectors overwrite it and its other sectors
// are kept.
func (c *Controller) applyEdit(next *models.Ledger, name string, q models.Quantities) {
	edited := c.state.Product()
	if models.NameKey(edited) == models.NameKey(name) {
		next.Replace(name, q, c.catalog.Sectors())
		return
	}

	next.Remove(edited)
	if _, exists := next.Find(name); !exists {
		next.Replace(name, q, c.catalog.Sectors())
		return
	}
	for id, v := range q {
		next.SetQuantity(name, id, v)
	}
}

// StartEdit switches to Editing(name), abandoning any edit in progress.
func (c *Controller) StartEdit(name string) (Form, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.ledger.Find(name)
	if !ok {
		return Form{}, ErrProductNotFound
	}
	c.state = Editing(rec.Name)
	return c.formLocked(), nil
}

// CancelEdit returns to Idle without saving.
func (c *Controller) CancelEdit() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle()
	return emptyForm()
}

// DeleteSector clears one sector of a product. The record itself is kept.
func (c *Controller) DeleteSector(ctx context.Context, name string, sector models.SectorID) error {
	if _, ok := c.catalog.Lookup(sector); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSector, sector)
	}
	return c.mutate(ctx, name, func(next *models.Ledger, key string) {
		next.SetQuantity(key, sector, decimal.Zero)
	})
}

// DeleteProduct clears every sector of a product.
func (c *Controller) DeleteProduct(ctx context.Context, name string) error {
	return c.mutate(ctx, name, func(next *models.Ledger, key string) {
		for _, s := range c.catalog.Sectors() {
			next.SetQuantity(key, s.ID, decimal.Zero)
		}
	})
}

func (c *Controller) mutate(ctx context.Context, name string, apply func(next *models.Ledger, key string)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.ledger.Find(name); !ok {
		return ErrProductNotFound
	}
	next := c.ledger.Clone()
	apply(next, name)

	if err := c.repo.Save(ctx, next); err != nil {
		zap.L().Error("failed to save ledger", zap.String("product", name), zap.Error(err))
		return err
	}
	c.ledger = next
	zap.L().Info("product cleared", zap.String("product", name))
	return nil
}
