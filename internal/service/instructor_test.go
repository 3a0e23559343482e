package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/repository"
)

func newInstructorFixture() *InstructorService {
	return NewInstructorService(&fakeCatalog{certs: []*entities.Certification{testCertification()}})
}

func TestInstructorIntro(t *testing.T) {
	svc := newInstructorFixture()

	msg, err := svc.Intro("comptia-network-plus", "Networking Concepts")
	if err != nil {
		t.Fatalf("intro: %v", err)
	}

	for _, want := range []string{
		"Welcome to the **Networking Concepts** domain of CompTIA Network+!",
		"**23%** of your exam",
		"1. Explain the OSI model",
		"**Key terms to master:** OSI Model, Subnetting",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("intro missing %q:\n%s", want, msg)
		}
	}
}

func TestInstructorRespondBranches(t *testing.T) {
	svc := newInstructorFixture()

	tests := []struct {
		name     string
		question string
		want     string
	}{
		{
			name:     "key term definition",
			question: "What is subnetting?",
			want:     "**Subnetting** is a key concept in the Networking Concepts domain",
		},
		{
			name:     "ports",
			question: "Which ports should I memorize?",
			want:     "key ports you need to know",
		},
		{
			name:     "acronyms",
			question: "What does DNS stand for?",
			want:     "key acronyms for the **Networking Concepts** domain",
		},
		{
			name:     "objectives",
			question: "Give me an overview of this domain",
			want:     "covers 23% of the CompTIA Network+ exam",
		},
		{
			name:     "default",
			question: "help me study",
			want:     "Excellent question about **Networking Concepts**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := svc.Respond("comptia-network-plus", "Networking Concepts", tt.question)
			if err != nil {
				t.Fatalf("respond: %v", err)
			}
			if !strings.Contains(msg, tt.want) {
				t.Errorf("response missing %q:\n%s", tt.want, msg)
			}
		})
	}
}

func TestInstructorTermResponseUsesNotes(t *testing.T) {
	svc := newInstructorFixture()

	msg, err := svc.Respond("comptia-network-plus", "Networking Concepts", "Can you explain the osi model to me?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "The OSI Model divides network communication into seven layers.") {
		t.Errorf("term response should quote the matching note sentence:\n%s", msg)
	}
}

func TestInstructorCommandsBranchNeedsContent(t *testing.T) {
	svc := newInstructorFixture()

	// the fixture has no commands, so the command branch falls through to
	// the default response
	msg, err := svc.Respond("comptia-network-plus", "Networking Concepts", "Which command line tool do I use?")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Excellent question") {
		t.Errorf("expected default response, got:\n%s", msg)
	}
}

func TestInstructorUnknownDomain(t *testing.T) {
	svc := newInstructorFixture()

	if _, err := svc.Respond("comptia-network-plus", "No Such Domain", "what is x"); !errors.Is(err, repository.ErrDomainNotFound) {
		t.Errorf("err = %v, want ErrDomainNotFound", err)
	}
	if _, err := svc.Intro("no-such-cert", "Networking Concepts"); !errors.Is(err, repository.ErrCertificationNotFound) {
		t.Errorf("err = %v, want ErrCertificationNotFound", err)
	}
}
