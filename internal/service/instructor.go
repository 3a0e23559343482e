package service

import (
	"fmt"
	"strings"

	"github.com/studylab/certprep/internal/domain/entities"
)

// InstructorService answers study questions for a single certification
// domain with rule-based responses built from the catalog content.
type InstructorService struct {
	catalog Catalog
}

// NewInstructorService creates an instructor service.
func NewInstructorService(catalog Catalog) *InstructorService {
	return &InstructorService{catalog: catalog}
}

// Intro returns the opening message for a domain study session.
func (s *InstructorService) Intro(certificationID, domainName string) (string, error) {
	cert, domain, err := s.catalog.GetDomain(certificationID, domainName)
	if err != nil {
		return "", err
	}

	objectives := numberedList(takeFirst(domain.Objectives, 4))
	terms := strings.Join(takeFirst(domain.KeyTerms, 6), ", ")

	return fmt.Sprintf(
		"Welcome to the **%s** domain of %s! This domain makes up **%s** of your exam.\n\n"+
			"I'll be your instructor today. Here's what we'll cover:\n\n%s\n\n"+
			"**Key terms to master:** %s\n\n%s.\n\n"+
			"Feel free to ask me anything about this domain, or I can walk you through each objective in detail. What would you like to start with?",
		domain.Name, cert.Name, domain.Weight, objectives, terms, firstSentence(domain.StudyNotes),
	), nil
}

// Respond answers a free-form question about a domain. Matching is by
// keyword, falling back to a domain overview.
func (s *InstructorService) Respond(certificationID, domainName, question string) (string, error) {
	cert, domain, err := s.catalog.GetDomain(certificationID, domainName)
	if err != nil {
		return "", err
	}

	q := strings.ToLower(question)

	if containsAny(q, "what is", "define", "explain") {
		if resp, ok := termResponse(q, cert, domain); ok {
			return resp, nil
		}
	}

	if containsAny(q, "port") && len(domain.Ports) > 0 {
		return fmt.Sprintf(
			"Here are the key ports you need to know for the **%s** domain:\n\n%s\n\n"+
				"**Memory Tip:** Focus on the most commonly tested ports. For %s, port numbers are frequently tested in scenario-based questions.",
			domain.Name, bulletList(domain.Ports, "**%s**"), cert.Name,
		), nil
	}

	if containsAny(q, "acronym", "abbreviation", "stand for") && len(domain.Acronyms) > 0 {
		return fmt.Sprintf(
			"Here are the key acronyms for the **%s** domain:\n\n%s\n\n"+
				"**Exam Tip:** Acronyms are heavily tested on %s. Make sure you can expand each one and explain what it does.",
			domain.Name, bulletList(domain.Acronyms, "**%s**"), cert.Name,
		), nil
	}

	if containsAny(q, "command", "tool", "syntax") && len(domain.Commands) > 0 {
		return fmt.Sprintf(
			"Key commands and tools for **%s**:\n\n%s\n\n"+
				"**Practice Tip:** The %s exam includes performance-based questions where you may need to identify the correct command for a given scenario.",
			domain.Name, bulletList(domain.Commands, "`%s`"), cert.Name,
		), nil
	}

	if containsAny(q, "objective", "topic", "cover", "overview") {
		return fmt.Sprintf(
			"The **%s** domain covers %s of the %s exam. Here are the key objectives:\n\n%s\n\n**Study Focus:** %s.",
			domain.Name, domain.Weight, cert.Name,
			numberedList(domain.Objectives), firstSentences(domain.StudyNotes, 2),
		), nil
	}

	return fmt.Sprintf(
		"Excellent question about **%s** in %s!\n\n"+
			"This domain accounts for **%s** of the exam. Here's what you need to know:\n\n"+
			"**Core Concepts:**\n%s\n\n"+
			"**Key Study Points:**\n%s.\n\n"+
			"**Exam Objectives Covered:**\n%s\n\n"+
			"Do you have a more specific question about any of these topics? I'm here to help you master this domain!",
		domain.Name, cert.Name, domain.Weight,
		bulletList(takeFirst(domain.KeyTerms, 6), "%s"),
		firstSentences(domain.StudyNotes, 3),
		numberedList(takeFirst(domain.Objectives, 3)),
	), nil
}

func termResponse(q string, cert *entities.Certification, domain *entities.CertDomain) (string, bool) {
	var term string
	for _, t := range domain.KeyTerms {
		if strings.Contains(q, strings.ToLower(t)) {
			term = t
			break
		}
	}
	if term == "" {
		return "", false
	}

	snippet := ""
	for _, s := range strings.Split(domain.StudyNotes, ".") {
		if strings.Contains(strings.ToLower(s), strings.ToLower(term)) {
			snippet = strings.TrimSpace(s) + "."
			break
		}
	}

	objective := ""
	for _, o := range domain.Objectives {
		if strings.Contains(strings.ToLower(o), strings.ToLower(term)) {
			objective = o
			break
		}
	}
	if objective == "" && len(domain.Objectives) > 0 {
		objective = domain.Objectives[0]
	}

	return fmt.Sprintf(
		"Great question! **%s** is a key concept in the %s domain of %s.\n\n%s\n\n"+
			"In the context of this domain, %s relates to: %s.\n\n**Study Tip:** %s.",
		term, domain.Name, cert.Name, snippet, term, objective, firstSentence(domain.StudyNotes),
	), true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func bulletList(items []string, format string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + fmt.Sprintf(format, item)
	}
	return strings.Join(lines, "\n")
}

func numberedList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, item)
	}
	return strings.Join(lines, "\n")
}

func firstSentence(notes string) string {
	return strings.TrimSpace(strings.Split(notes, ".")[0])
}

func firstSentences(notes string, n int) string {
	parts := strings.Split(notes, ".")
	if len(parts) > n {
		parts = parts[:n]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, ". ")
}
