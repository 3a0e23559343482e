package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/studylab/certprep/internal/domain/entities"
)

const (
	maxFlashcards      = 40
	maxQuestions       = 25
	termsPerDomain     = 5
	acronymsPerDomain  = 3
	portsPerDomain     = 3
	acronymQuestions   = 2
	distractorsPerItem = 3
	minNoteSentenceLen = 30
)

// Generator derives flashcards and multiple-choice questions from
// certification catalog content. Flashcard generation is fully
// deterministic; question generation shuffles distractors and ordering
// through the injected rng.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator. A nil rng falls back to a time-seeded
// source; tests inject a seeded one.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// GenerateFlashcards synthesizes up to 40 front/back pairs from a
// certification, in domain order: up to 5 key terms, 3 acronyms and
// 3 ports per domain. Two calls on the same certification produce
// identical output.
func (g *Generator) GenerateFlashcards(cert *entities.Certification) []entities.GeneratedFlashcard {
	var cards []entities.GeneratedFlashcard

	for i := range cert.Domains {
		d := &cert.Domains[i]

		for _, term := range takeFirst(d.KeyTerms, termsPerDomain) {
			cards = append(cards, entities.GeneratedFlashcard{
				Front: fmt.Sprintf("What is %q in the context of %s?", term, cert.Name),
				Back: fmt.Sprintf("%s is a key concept in the %q domain of %s. %s",
					term, d.Name, cert.Name, termDefinition(d, term)),
			})
		}

		for _, acronym := range takeFirst(d.Acronyms, acronymsPerDomain) {
			abbr, expansion, ok := splitAcronym(acronym)
			if !ok {
				continue
			}
			cards = append(cards, entities.GeneratedFlashcard{
				Front: fmt.Sprintf("What does %q stand for?", abbr),
				Back:  expansion,
			})
		}

		for _, port := range takeFirst(d.Ports, portsPerDomain) {
			number, svc, ok := splitPort(port)
			if !ok {
				continue
			}
			cards = append(cards, entities.GeneratedFlashcard{
				Front: fmt.Sprintf("What service uses port %s?", number),
				Back:  svc,
			})
		}
	}

	if len(cards) > maxFlashcards {
		cards = cards[:maxFlashcards]
	}
	return cards
}

// GenerateQuestions synthesizes up to 25 multiple-choice questions from a
// certification, optionally restricted to one named domain. Any rule
// lacking source material is silently skipped; a starved certification
// simply yields a short or empty sequence.
func (g *Generator) GenerateQuestions(cert *entities.Certification, domainFilter string) []entities.GeneratedQuestion {
	var questions []entities.GeneratedQuestion

	for i := range cert.Domains {
		d := &cert.Domains[i]
		if domainFilter != "" && d.Name != domainFilter {
			continue
		}

		questions = append(questions, g.acronymQuestions(cert, d)...)
		if q, ok := g.portQuestion(cert, d); ok {
			questions = append(questions, q)
		}
		if q, ok := g.notesQuestion(cert, d); ok {
			questions = append(questions, q)
		}
		if q, ok := g.keyTermQuestion(cert, d); ok {
			questions = append(questions, q)
		}
	}

	g.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	return questions
}

// PadQuestions repeats a generated set until it reaches the floor, capped
// at max(floor, natural yield). An empty set stays empty: there is nothing
// to repeat.
func PadQuestions(questions []entities.GeneratedQuestion, floor int) []entities.GeneratedQuestion {
	if len(questions) == 0 || len(questions) >= floor {
		return questions
	}

	padded := append([]entities.GeneratedQuestion(nil), questions...)
	for len(padded) < floor {
		padded = append(padded, questions...)
	}
	return padded[:floor]
}

// acronymQuestions builds expansion questions from the first two acronyms
// of a domain that carries at least four, drawing distractors from the
// other acronyms of the same domain.
func (g *Generator) acronymQuestions(cert *entities.Certification, d *entities.CertDomain) []entities.GeneratedQuestion {
	if len(d.Acronyms) < 4 {
		return nil
	}

	var questions []entities.GeneratedQuestion
	for i := 0; i < acronymQuestions && i < len(d.Acronyms); i++ {
		abbr, expansion, ok := splitAcronym(d.Acronyms[i])
		if !ok {
			continue
		}

		var wrong []string
		for j, other := range d.Acronyms {
			if j == i {
				continue
			}
			if _, exp, ok := splitAcronym(other); ok {
				wrong = appendUnique(wrong, exp, expansion)
			}
			if len(wrong) == distractorsPerItem {
				break
			}
		}
		if len(wrong) < distractorsPerItem {
			continue
		}

		options, correctIndex := g.buildOptions(expansion, wrong)
		questions = append(questions, entities.GeneratedQuestion{
			Question:     fmt.Sprintf("What does the acronym %q stand for in the context of %s?", abbr, cert.Name),
			Options:      options,
			CorrectIndex: correctIndex,
			Explanation:  fmt.Sprintf("%s stands for %q. This is a key concept in the %s domain.", abbr, expansion, d.Name),
			Domain:       d.Name,
		})
	}
	return questions
}

// portQuestion builds one question from the first port entry of a domain
// that carries at least four, with the next three services as distractors.
func (g *Generator) portQuestion(cert *entities.Certification, d *entities.CertDomain) (entities.GeneratedQuestion, bool) {
	if len(d.Ports) < 4 {
		return entities.GeneratedQuestion{}, false
	}

	number, svc, ok := splitPort(d.Ports[0])
	if !ok {
		return entities.GeneratedQuestion{}, false
	}

	var wrong []string
	for _, port := range d.Ports[1:] {
		if _, s, ok := splitPort(port); ok {
			wrong = appendUnique(wrong, s, svc)
		}
		if len(wrong) == distractorsPerItem {
			break
		}
	}
	if len(wrong) < distractorsPerItem {
		return entities.GeneratedQuestion{}, false
	}

	options, correctIndex := g.buildOptions(svc, wrong)
	return entities.GeneratedQuestion{
		Question:     fmt.Sprintf("Which service uses port %s?", number),
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation: fmt.Sprintf("Port %s is used by %s. Memorizing common port numbers is essential for the %s exam.",
			number, svc, cert.Name),
		Domain: d.Name,
	}, true
}

// notesQuestion builds a "which statement is true" question from the first
// sufficiently long study-note sentence, with fixed generic false
// statements as distractors. It guarantees at least one question per
// domain even when no acronyms or ports exist.
func (g *Generator) notesQuestion(cert *entities.Certification, d *entities.CertDomain) (entities.GeneratedQuestion, bool) {
	note := firstLongSentence(d.StudyNotes)
	if note == "" {
		return entities.GeneratedQuestion{}, false
	}

	wrong := []string{
		fmt.Sprintf("The %s domain is not tested on the %s exam", d.Name, cert.Name),
		fmt.Sprintf("All concepts in %s are optional knowledge for %s", d.Name, cert.Name),
		fmt.Sprintf("The %s domain only applies to advanced practitioners", d.Name),
	}

	options, correctIndex := g.buildOptions(note, wrong)
	return entities.GeneratedQuestion{
		Question:     fmt.Sprintf("Which statement best describes a key concept in the %q domain of %s?", d.Name, cert.Name),
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation: fmt.Sprintf("%s. This is a fundamental concept in the %s domain that is frequently tested.",
			note, d.Name),
		Domain: d.Name,
	}, true
}

// keyTermQuestion builds one term-recognition question when the domain
// carries at least four key terms.
func (g *Generator) keyTermQuestion(cert *entities.Certification, d *entities.CertDomain) (entities.GeneratedQuestion, bool) {
	if len(d.KeyTerms) < 4 {
		return entities.GeneratedQuestion{}, false
	}

	correct := d.KeyTerms[0]
	var wrong []string
	for _, term := range d.KeyTerms[1:] {
		wrong = appendUnique(wrong, term, correct)
		if len(wrong) == distractorsPerItem {
			break
		}
	}
	if len(wrong) < distractorsPerItem {
		return entities.GeneratedQuestion{}, false
	}

	options, correctIndex := g.buildOptions(correct, wrong)
	return entities.GeneratedQuestion{
		Question:     fmt.Sprintf("Which of the following is a key term in the %q domain of %s?", d.Name, cert.Name),
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation: fmt.Sprintf("%q is a key term in the %s domain. Understanding this concept is important for the %s exam.",
			correct, d.Name, cert.Name),
		Domain: d.Name,
	}, true
}

// buildOptions shuffles the correct answer in with its distractors and
// re-derives the correct index by value lookup afterwards.
func (g *Generator) buildOptions(correct string, distractors []string) ([]string, int) {
	options := make([]string, 0, 1+len(distractors))
	options = append(options, correct)
	options = append(options, distractors...)

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, opt := range options {
		if opt == correct {
			correctIndex = i
			break
		}
	}

	return options, correctIndex
}

// termDefinition finds the first study-note sentence mentioning the term,
// case-insensitively, falling back to a generic pointer at the notes.
func termDefinition(d *entities.CertDomain, term string) string {
	lower := strings.ToLower(term)
	for _, sentence := range strings.Split(d.StudyNotes, ".") {
		if strings.Contains(strings.ToLower(sentence), lower) {
			return strings.TrimSpace(sentence) + "."
		}
	}
	return fmt.Sprintf("Review the %s domain study notes for full details.", d.Name)
}

// firstLongSentence returns the first study-note sentence longer than 30
// characters after trimming, or "".
func firstLongSentence(notes string) string {
	for _, sentence := range strings.Split(notes, ". ") {
		s := strings.TrimSpace(strings.TrimSuffix(sentence, "."))
		if len(s) > minNoteSentenceLen {
			return s
		}
	}
	return ""
}

// splitAcronym splits an "ABBR - Expansion" catalog entry.
func splitAcronym(entry string) (abbr, expansion string, ok bool) {
	abbr, expansion, found := strings.Cut(entry, " - ")
	if !found || abbr == "" || expansion == "" {
		return "", "", false
	}
	return abbr, expansion, true
}

// splitPort splits a "number service" catalog entry. Entries without a
// space (bare connector names) are skipped.
func splitPort(entry string) (number, service string, ok bool) {
	number, service, found := strings.Cut(entry, " ")
	if !found || number == "" || service == "" {
		return "", "", false
	}
	return number, service, true
}

// appendUnique appends a candidate distractor unless it is empty, equal to
// the correct answer, or already present.
func appendUnique(distractors []string, candidate, correct string) []string {
	if candidate == "" || candidate == correct {
		return distractors
	}
	for _, d := range distractors {
		if d == candidate {
			return distractors
		}
	}
	return append(distractors, candidate)
}

// takeFirst returns the first n elements, or the whole slice if shorter.
func takeFirst(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
