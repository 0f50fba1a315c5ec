package models

// Product is the subset of the platform product projection the pipeline
// reads. Everything is fetched read-only once per invocation.
type Product struct {
	ID          string            `json:"id"`
	Version     int64             `json:"version"`
	ProductType ProductTypeRef    `json:"productType"`
	MasterData  ProductMasterData `json:"masterData"`
}

type ProductTypeRef struct {
	ID string `json:"id"`
}

type ProductMasterData struct {
	Current ProductData `json:"current"`
	Staged  ProductData `json:"staged"`
}

type ProductData struct {
	Name          map[string]string `json:"name"`
	MasterVariant ProductVariant    `json:"masterVariant"`
}

type ProductVariant struct {
	Attributes []Attribute `json:"attributes"`
}

// Attribute is a platform product attribute. Value is left untyped because
// attribute types vary per product type; the pipeline only ever inspects the
// generateDescription attribute for truthiness.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Name returns the product's display name for the given locale.
func (p *Product) Name(locale string) string {
	return p.MasterData.Current.Name[locale]
}

// StagedAttributes returns the staged master-variant attribute set.
func (p *Product) StagedAttributes() []Attribute {
	return p.MasterData.Staged.MasterVariant.Attributes
}

// FindAttribute returns the named staged attribute, or nil when absent.
func (p *Product) FindAttribute(name string) *Attribute {
	for i := range p.MasterData.Staged.MasterVariant.Attributes {
		if p.MasterData.Staged.MasterVariant.Attributes[i].Name == name {
			return &p.MasterData.Staged.MasterVariant.Attributes[i]
		}
	}
	return nil
}

// Truthy reports whether the attribute value is set in the JavaScript
// Boolean(value) sense used by the upstream attribute editor: false, 0, ""
// and null are falsy, everything else is truthy.
func (a *Attribute) Truthy() bool {
	switch v := a.Value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	default:
		return true
	}
}
