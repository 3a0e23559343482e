package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalogLoads(t *testing.T) {
	repo, err := NewCatalogRepository()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	certs := repo.GetAll()
	if len(certs) < 3 {
		t.Fatalf("catalog has %d certifications, want at least 3", len(certs))
	}

	for _, c := range certs {
		if c.ID == "" || c.Name == "" || c.ExamCode == "" {
			t.Errorf("certification %q missing identity fields", c.ID)
		}
		if len(c.Domains) == 0 {
			t.Errorf("certification %q has no domains", c.ID)
		}
		for _, d := range c.Domains {
			if d.Name == "" || d.Weight == "" {
				t.Errorf("certification %q has a domain without name or weight", c.ID)
			}
			if len(d.KeyTerms) == 0 {
				t.Errorf("domain %q of %q has no key terms", d.Name, c.ID)
			}
			if d.StudyNotes == "" {
				t.Errorf("domain %q of %q has no study notes", d.Name, c.ID)
			}
			for _, a := range d.Acronyms {
				if !strings.Contains(a, " - ") {
					t.Errorf("acronym %q in domain %q is not in ABBR - Expansion form", a, d.Name)
				}
			}
		}
	}
}

func TestCatalogGetByID(t *testing.T) {
	repo, err := NewCatalogRepository()
	if err != nil {
		t.Fatal(err)
	}

	cert, err := repo.GetByID("comptia-aplus")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if cert.Name != "CompTIA A+" {
		t.Errorf("name = %q, want CompTIA A+", cert.Name)
	}

	if _, err := repo.GetByID("no-such-cert"); !errors.Is(err, ErrCertificationNotFound) {
		t.Errorf("unknown id err = %v, want ErrCertificationNotFound", err)
	}
}

func TestCatalogGetDomain(t *testing.T) {
	repo, err := NewCatalogRepository()
	if err != nil {
		t.Fatal(err)
	}

	cert, domain, err := repo.GetDomain("comptia-aplus", "Networking (Core 1)")
	if err != nil {
		t.Fatalf("get domain: %v", err)
	}
	if cert.ID != "comptia-aplus" {
		t.Errorf("cert id = %q", cert.ID)
	}
	if domain.Weight != "20%" {
		t.Errorf("domain weight = %q, want 20%%", domain.Weight)
	}

	if _, _, err := repo.GetDomain("comptia-aplus", "No Such Domain"); !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("unknown domain err = %v, want ErrDomainNotFound", err)
	}
	if _, _, err := repo.GetDomain("no-such-cert", "Networking (Core 1)"); !errors.Is(err, ErrCertificationNotFound) {
		t.Errorf("unknown cert err = %v, want ErrCertificationNotFound", err)
	}
}
