package repository

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/studylab/certprep/internal/domain/entities"
)

//go:embed assets/certifications.json
var catalogFS embed.FS

var (
	ErrCertificationNotFound = errors.New("certification not found")
	ErrDomainNotFound        = errors.New("domain not found")
)

// CatalogRepository provides read-only access to the certification catalog.
// The catalog is embedded in the binary and parsed once at startup; there
// are no mutation operations and no runtime failure mode.
type CatalogRepository struct {
	certs []*entities.Certification
	byID  map[string]*entities.Certification
}

// NewCatalogRepository parses and validates the embedded catalog.
func NewCatalogRepository() (*CatalogRepository, error) {
	certs, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Certification, len(certs))
	for _, c := range certs {
		byID[c.ID] = c
	}

	return &CatalogRepository{
		certs: certs,
		byID:  byID,
	}, nil
}

// GetByID retrieves a certification by its identifier. An unknown id is a
// normal outcome reported as ErrCertificationNotFound, never a panic.
func (r *CatalogRepository) GetByID(id string) (*entities.Certification, error) {
	cert, ok := r.byID[id]
	if !ok {
		return nil, ErrCertificationNotFound
	}
	return cert, nil
}

// GetAll retrieves all certifications in catalog order.
func (r *CatalogRepository) GetAll() []*entities.Certification {
	return r.certs
}

// GetDomain retrieves a single named domain of a certification.
func (r *CatalogRepository) GetDomain(certID, domainName string) (*entities.Certification, *entities.CertDomain, error) {
	cert, err := r.GetByID(certID)
	if err != nil {
		return nil, nil, err
	}

	domain := cert.DomainByName(domainName)
	if domain == nil {
		return nil, nil, ErrDomainNotFound
	}

	return cert, domain, nil
}

func loadCatalog() ([]*entities.Certification, error) {
	data, err := catalogFS.ReadFile("assets/certifications.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}

	var wrapper struct {
		Certifications []*entities.Certification `json:"certifications"`
	}
	if err = json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	if len(wrapper.Certifications) == 0 {
		return nil, fmt.Errorf("catalog contains no certifications")
	}

	validate := validator.New()
	for _, c := range wrapper.Certifications {
		if err = validate.Struct(c); err != nil {
			return nil, fmt.Errorf("invalid certification %q: %w", c.ID, err)
		}
	}

	return wrapper.Certifications, nil
}
