package domain_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"todoapp/internal/core/domain"
)

func TestParsePriority(t *testing.T) {
	RegisterTestingT(t)

	for _, valid := range []string{"small", "medium", "big"} {
		priority, err := domain.ParsePriority(valid)

		Expect(err).To(BeNil())
		Expect(priority.String()).To(Equal(valid))
	}

	_, err := domain.ParsePriority("urgent")
	Expect(err).NotTo(BeNil())

	_, err = domain.ParsePriority("")
	Expect(err).NotTo(BeNil())
}

func TestDeadlineOrEpoch_Unset(t *testing.T) {
	RegisterTestingT(t)

	todo := domain.Todo{Name: "no deadline"}

	Expect(todo.DeadlineOrEpoch()).To(Equal(domain.DeadlineEpoch))
}

func TestDeadlineOrEpoch_TruncatesToDate(t *testing.T) {
	RegisterTestingT(t)

	todo := domain.Todo{
		Name:     "with deadline",
		Deadline: time.Date(2026, time.March, 15, 13, 45, 10, 0, time.UTC),
	}

	Expect(todo.DeadlineOrEpoch()).To(Equal(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)))
}

func TestBelongsToUser(t *testing.T) {
	RegisterTestingT(t)

	todo := domain.Todo{UserId: 7}

	Expect(todo.BelongsToUser(7)).To(BeTrue())
	Expect(todo.BelongsToUser(8)).To(BeFalse())
}
