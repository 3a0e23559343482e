package telegram

import (
	"github.com/studylab/certprep/internal/domain/entities"
	"github.com/studylab/certprep/internal/service"
)

// StudyService is the study core surface the bot needs.
type StudyService interface {
	Certifications() []*entities.Certification
	Certification(id string) (*entities.Certification, error)
	StartPractice(userID, certificationID, domainFilter string) (*service.PracticeSession, error)
	Practice(sessionID string) (*service.PracticeSession, error)
	DiscardPractice(sessionID string)
}

// InstructorService answers free-form domain questions.
type InstructorService interface {
	Respond(certificationID, domainName, question string) (string, error)
}
