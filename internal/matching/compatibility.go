// Package matching оценивает, насколько ментор подходит менти по пересечению отраслей.
//
// Прямое пересечение: отрасли, которые есть и во всём опыте ментора, и в текущем опыте менти.
// Смежное пересечение: отрасли, до которых обе стороны доходят через таблицу смежных отраслей.
// Сумма делится на удвоенное число текущих записей опыта менти, поэтому балл может быть больше 1.
package matching

import (
	"errors"

	"github.com/Freeeeeet/mentorship_api/internal/model"
)

// ErrNoCurrentExperience is returned when the mentee has nothing to score against
var ErrNoCurrentExperience = errors.New("mentee has no current experience")

// Breakdown составляющие балла для логов и тестов
type Breakdown struct {
	Direct  int
	Related int
	Score   float64
}

// Score считает совместимость текущих отраслей менти и отраслей ментора.
// menteeCurrent содержит по элементу на каждую текущую запись опыта, с повторами:
// знаменатель считает записи опыта, а не уникальные отрасли.
func Score(menteeCurrent, mentor []model.Industry) (Breakdown, error) {
	if len(menteeCurrent) == 0 {
		return Breakdown{}, ErrNoCurrentExperience
	}

	menteeSet := toSet(menteeCurrent)
	mentorSet := toSet(mentor)

	b := Breakdown{
		Direct:  intersectionSize(mentorSet, menteeSet),
		Related: intersectionSize(relatedSet(mentorSet), relatedSet(menteeSet)),
	}
	b.Score = float64(b.Direct+b.Related) / float64(len(menteeCurrent)*2)

	return b, nil
}

// relatedSet объединяет смежные отрасли всех элементов set.
// Неизвестные отрасли ничего не добавляют.
func relatedSet(set map[model.Industry]struct{}) map[model.Industry]struct{} {
	related := make(map[model.Industry]struct{})
	for industry := range set {
		for _, r := range industry.Related() {
			related[r] = struct{}{}
		}
	}
	return related
}

func toSet(industries []model.Industry) map[model.Industry]struct{} {
	set := make(map[model.Industry]struct{}, len(industries))
	for _, i := range industries {
		set[i] = struct{}{}
	}
	return set
}

func intersectionSize(a, b map[model.Industry]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
