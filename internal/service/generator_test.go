package service

import (
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/studylab/certprep/internal/domain/entities"
)

func testCertification() *entities.Certification {
	return &entities.Certification{
		ID:       "comptia-network-plus",
		Name:     "CompTIA Network+",
		ExamCode: "N10-009",
		Domains: []entities.CertDomain{
			{
				Name:       "Networking Concepts",
				Weight:     "23%",
				Objectives: []string{"Explain the OSI model", "Compare network topologies"},
				KeyTerms:   []string{"OSI Model", "Subnetting", "VLAN", "Routing Table", "Default Gateway"},
				Acronyms: []string{
					"DNS - Domain Name System",
					"DHCP - Dynamic Host Configuration Protocol",
					"NAT - Network Address Translation",
					"VPN - Virtual Private Network",
					"OSI - Open Systems Interconnection",
				},
				Ports: []string{
					"53 DNS",
					"67 DHCP Server",
					"80 HTTP",
					"443 HTTPS",
					"22 SSH",
				},
				StudyNotes: "The OSI Model divides network communication into seven layers. Subnetting splits a network into smaller broadcast domains. A VLAN segments traffic logically at layer two.",
			},
			{
				Name:       "Network Security",
				Weight:     "20%",
				Objectives: []string{"Harden network devices"},
				KeyTerms:   []string{"Firewall", "IDS", "Zero Trust", "ACL"},
				Acronyms:   []string{"ACL - Access Control List"},
				Ports:      nil,
				StudyNotes: "A Firewall filters traffic by rule and sits at the network boundary. Zero Trust assumes no implicit trust.",
			},
		},
	}
}

func newTestGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func TestGenerateFlashcardsDeterministic(t *testing.T) {
	cert := testCertification()

	first := newTestGenerator(1).GenerateFlashcards(cert)
	second := newTestGenerator(99).GenerateFlashcards(cert)

	if len(first) == 0 {
		t.Fatal("expected flashcards, got none")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("flashcard generation should not depend on the rng")
	}
}

func TestGenerateFlashcardsContent(t *testing.T) {
	cert := testCertification()
	cards := newTestGenerator(1).GenerateFlashcards(cert)

	// first domain yields 5 terms + 3 acronyms + 3 ports,
	// second yields 4 terms + 1 acronym
	if got, want := len(cards), 16; got != want {
		t.Fatalf("got %d cards, want %d", got, want)
	}

	if want := `What is "OSI Model" in the context of CompTIA Network+?`; cards[0].Front != want {
		t.Errorf("card front = %q, want %q", cards[0].Front, want)
	}
	if !strings.Contains(cards[0].Back, "The OSI Model divides network communication into seven layers.") {
		t.Errorf("term card back should quote the note sentence, got %q", cards[0].Back)
	}

	// VLAN's note sentence exists; Routing Table has none and gets the fallback
	var routingBack string
	for _, c := range cards {
		if strings.Contains(c.Front, "Routing Table") {
			routingBack = c.Back
		}
	}
	if !strings.Contains(routingBack, "Review the Networking Concepts domain study notes for full details.") {
		t.Errorf("missing fallback definition, got %q", routingBack)
	}

	var portCard *entities.GeneratedFlashcard
	for i := range cards {
		if cards[i].Front == "What service uses port 53?" {
			portCard = &cards[i]
		}
	}
	if portCard == nil {
		t.Fatal("missing port flashcard for port 53")
	}
	if portCard.Back != "DNS" {
		t.Errorf("port card back = %q, want %q", portCard.Back, "DNS")
	}
}

func TestGenerateFlashcardsCap(t *testing.T) {
	cert := &entities.Certification{ID: "big", Name: "Big Cert"}
	for i := 0; i < 10; i++ {
		var terms []string
		for j := 0; j < 5; j++ {
			terms = append(terms, fmt.Sprintf("Term %d-%d", i, j))
		}
		cert.Domains = append(cert.Domains, entities.CertDomain{
			Name:       fmt.Sprintf("Domain %d", i),
			KeyTerms:   terms,
			StudyNotes: "Notes.",
		})
	}

	cards := newTestGenerator(1).GenerateFlashcards(cert)
	if len(cards) != maxFlashcards {
		t.Errorf("got %d cards, want cap %d", len(cards), maxFlashcards)
	}
}

func TestGenerateQuestionsInvariants(t *testing.T) {
	cert := testCertification()

	for seed := int64(0); seed < 50; seed++ {
		questions := newTestGenerator(seed).GenerateQuestions(cert, "")

		if len(questions) == 0 {
			t.Fatalf("seed %d: expected questions", seed)
		}
		if len(questions) > maxQuestions {
			t.Fatalf("seed %d: %d questions exceeds cap %d", seed, len(questions), maxQuestions)
		}

		for _, q := range questions {
			if len(q.Options) != 4 {
				t.Fatalf("seed %d: question %q has %d options", seed, q.Question, len(q.Options))
			}
			if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
				t.Fatalf("seed %d: correct index %d out of range", seed, q.CorrectIndex)
			}

			seen := make(map[string]struct{}, len(q.Options))
			for _, opt := range q.Options {
				if _, dup := seen[opt]; dup {
					t.Fatalf("seed %d: duplicate option %q in %q", seed, opt, q.Question)
				}
				seen[opt] = struct{}{}
			}

			if q.Domain == "" {
				t.Fatalf("seed %d: question %q has no domain", seed, q.Question)
			}
			if q.Explanation == "" {
				t.Fatalf("seed %d: question %q has no explanation", seed, q.Question)
			}
		}
	}
}

func TestGenerateQuestionsAcronymRule(t *testing.T) {
	// one domain, many key terms and acronyms, no ports
	cert := &entities.Certification{
		ID:   "acr",
		Name: "Acronym Cert",
		Domains: []entities.CertDomain{
			{
				Name: "Core",
				KeyTerms: []string{
					"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8", "T9", "T10",
					"T11", "T12", "T13", "T14", "T15", "T16", "T17", "T18", "T19",
				},
				Acronyms: []string{
					"AAA - Authentication Authorization Accounting",
					"BBB - Broadband Backbone Bridge",
					"CCC - Common Criteria Certification",
					"DDD - Distributed Denial Defense",
					"EEE - Energy Efficient Ethernet",
					"FFF - Forward Fault Filter",
					"GGG - Global Gateway Group",
				},
				StudyNotes: "This sentence is comfortably longer than thirty characters. Short tail.",
			},
		},
	}

	questions := newTestGenerator(7).GenerateQuestions(cert, "")

	var acronym, port, notes, keyTerm int
	for _, q := range questions {
		switch {
		case strings.Contains(q.Question, "acronym"):
			acronym++
		case strings.Contains(q.Question, "port"):
			port++
		case strings.Contains(q.Question, "statement"):
			notes++
		case strings.Contains(q.Question, "key term"):
			keyTerm++
		}
	}

	if acronym != 2 {
		t.Errorf("got %d acronym questions, want 2", acronym)
	}
	if port != 0 {
		t.Errorf("got %d port questions, want 0", port)
	}
	if notes != 1 {
		t.Errorf("got %d notes questions, want 1", notes)
	}
	if keyTerm != 1 {
		t.Errorf("got %d key term questions, want 1", keyTerm)
	}
}

func TestGenerateQuestionsDomainFilter(t *testing.T) {
	cert := testCertification()

	questions := newTestGenerator(3).GenerateQuestions(cert, "Network Security")
	if len(questions) == 0 {
		t.Fatal("expected questions for the filtered domain")
	}
	for _, q := range questions {
		if q.Domain != "Network Security" {
			t.Errorf("question %q from domain %q leaked through the filter", q.Question, q.Domain)
		}
	}
}

func TestGenerateQuestionsStarvedDomain(t *testing.T) {
	cert := &entities.Certification{
		ID:   "thin",
		Name: "Thin Cert",
		Domains: []entities.CertDomain{
			{Name: "Sparse", KeyTerms: []string{"Only", "Three", "Terms"}, StudyNotes: "Too short."},
		},
	}

	questions := newTestGenerator(1).GenerateQuestions(cert, "")
	if len(questions) != 0 {
		t.Errorf("expected no questions from a starved domain, got %d", len(questions))
	}
}

func TestPadQuestions(t *testing.T) {
	base := []entities.GeneratedQuestion{
		{Question: "a"}, {Question: "b"}, {Question: "c"},
	}

	padded := PadQuestions(base, 20)
	if len(padded) != 20 {
		t.Fatalf("got %d questions, want 20", len(padded))
	}
	for i, q := range padded {
		if q.Question != base[i%3].Question {
			t.Fatalf("padding should repeat the set in order, index %d got %q", i, q.Question)
		}
	}

	if got := PadQuestions(nil, 20); len(got) != 0 {
		t.Errorf("empty set must stay empty, got %d", len(got))
	}

	long := make([]entities.GeneratedQuestion, 25)
	if got := PadQuestions(long, 20); len(got) != 25 {
		t.Errorf("a set above the floor must pass through, got %d", len(got))
	}
}
