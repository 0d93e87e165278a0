package task

import "time"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// Seed returns the example board used when nothing was saved before
func Seed() []Task {
	seed := func(id ID, title, description string, priority Priority, number string, created time.Time, hours float64, tags ...string) Task {
		return Task{
			ID:             id,
			Title:          title,
			Description:    description,
			Status:         New,
			Priority:       priority,
			AssigneeCount:  1,
			TaskNumber:     number,
			CreatedAt:      created,
			UpdatedAt:      created,
			Tags:           tags,
			EstimatedHours: ptr(hours),
		}
	}

	questions := seed("6", "Questions",
		"Address pending questions and clarifications from the development team.",
		Medium, "#1115", day(2024, time.January, 20), 2, "questions", "clarification")
	questions.Status = Ongoing
	questions.AssigneeCount = 2
	questions.MovedToOngoingAt = ptr(day(2024, time.January, 21))
	questions.DueDate = ptr(day(2024, time.February, 1))

	return []Task{
		seed("1", "Admin Panel Test Cases",
			"Comprehensive testing of admin panel functionality including user management, settings, and reporting features.",
			High, "#3", day(2024, time.January, 15), 8, "testing", "admin", "high-priority"),
		seed("2", "Seller Panel Test Cases",
			"Testing seller dashboard, product management, order processing, and analytics features.",
			Medium, "#40", day(2024, time.January, 16), 6, "testing", "seller", "dashboard"),
		seed("3", "Sales Manager Panel",
			"Testing sales management features, team performance tracking, and commission calculations.",
			Medium, "#41", day(2024, time.January, 17), 5, "testing", "sales", "management"),
		seed("4", "Customer Support & Operations",
			"Testing customer support tools, ticket management, and operational workflows.",
			High, "#43", day(2024, time.January, 18), 7, "testing", "support", "operations"),
		seed("5", "Shop Panel Test Cases",
			"Testing e-commerce functionality, product catalog, shopping cart, and checkout process.",
			Low, "#13", day(2024, time.January, 19), 4, "testing", "shop", "ecommerce"),
		questions,
	}
}
