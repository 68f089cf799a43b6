package demo

import (
	"time"

	"github.com/utdiscussions/forumkit/modules/forum"
	"github.com/utdiscussions/forumkit/pkg/identity"
)

// seed loads the sample dataset the demo backend starts with.
func seed(b *Backend) {
	sarah := identity.Identity{
		ID:          "demo-sarah123",
		Handle:      "sarah123",
		Email:       "sarah.chen@example.edu",
		DisplayName: "Sarah Chen",
		Avatar:      avatarURL("Sarah Chen"),
		JoinedAt:    time.Date(2023, 1, 12, 0, 0, 0, 0, time.UTC),
		Reputation:  412,
		Verified:    true,
	}
	mike := identity.Identity{
		ID:          "demo-mike_r",
		Handle:      "mike_r",
		Email:       "mike.rodriguez@example.edu",
		DisplayName: "Mike Rodriguez",
		Avatar:      avatarURL("Mike Rodriguez"),
		JoinedAt:    time.Date(2023, 9, 3, 0, 0, 0, 0, time.UTC),
		Reputation:  87,
		Verified:    false,
	}

	b.users[sarah.ID] = sarah
	b.users[mike.ID] = mike

	questions := []*forum.Question{
		{
			ID:        1,
			Title:     "Need help with Calculus I - Integration by Parts",
			Body:      "I'm struggling with integration by parts problems. Can someone explain the process step by step?",
			Author:    &sarah,
			CreatedAt: time.Date(2024, 10, 14, 10, 30, 0, 0, time.UTC),
			Tags:      []string{"Mathematics", "Calculus", "Integration"},
			Category:  "Mathematics",
			Likes:     8,
			Views:     156,
			Replies: []forum.Reply{
				{
					ID:           1,
					Body:         "Pick u using LIATE, then differentiate it and integrate the rest. Work a couple of textbook examples and it clicks.",
					Author:       &mike,
					CreatedAt:    time.Date(2024, 10, 14, 12, 5, 0, 0, time.UTC),
					Likes:        5,
					IsBestAnswer: true,
					QuestionID:   1,
				},
			},
			IsAnswered: true,
		},
		{
			ID:        2,
			Title:     "CS 2336 - Programming Assignment 2 Discussion",
			Body:      "Anyone else working on the linked list assignment? I'm having trouble with the deletion method.",
			Author:    &mike,
			CreatedAt: time.Date(2024, 10, 14, 14, 15, 0, 0, time.UTC),
			Tags:      []string{"Computer Science", "Java", "Data Structures"},
			Category:  "Computer Science",
			Likes:     15,
			Views:     203,
		},
		{
			ID:        3,
			Title:     "Study group for PHYS 2325 midterm?",
			Body:      "The second midterm covers rotational dynamics. Looking for people to review problem sets with this weekend.",
			Author:    &sarah,
			CreatedAt: time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC),
			Tags:      []string{"Physics", "Study Group"},
			Category:  "Physics",
			Likes:     3,
			Views:     44,
		},
	}

	for _, q := range questions {
		b.questions[q.ID] = q
	}
	b.nextQID = 3
	b.nextRID = 1
}
