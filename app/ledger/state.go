package ledger

import "github.com/mytheresa/balanco-mensal/models"

const (
	LabelAdd  = "Adicionar"
	LabelSave = "Salvar"
)

// EditState is either Idle (zero value) or Editing one product.
type EditState struct {
	product string
}

func Idle() EditState {
	return EditState{}
}

func Editing(product string) EditState {
	return EditState{product: models.NormalizeProductName(product)}
}

func (s EditState) IsEditing() bool {
	return s.product != ""
}

// Product returns the product being edited, empty when Idle.
func (s EditState) Product() string {
	return s.product
}

// Form is what the entry form shows for a given EditState. Product is the record
// being edited and goes back with the submission as its edit target.
type Form struct {
	Name        string
	Product     string
	Values      map[models.SectorID]string
	Editing     bool
	SubmitLabel string
	ShowCancel  bool
}

func emptyForm() Form {
	return Form{Values: map[models.SectorID]string{}, SubmitLabel: LabelAdd}
}

func editForm(rec models.ProductRecord, catalog *models.Catalog) Form {
	f := Form{
		Name:        rec.Name,
		Product:     rec.Name,
		Values:      make(map[models.SectorID]string),
		Editing:     true,
		SubmitLabel: LabelSave,
		ShowCancel:  true,
	}
	for _, s := range catalog.Sectors() {
		f.Values[s.ID] = models.FormInputValue(s, rec.Quantity(s.ID))
	}
	return f
}
