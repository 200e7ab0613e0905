package catalog

import "github.com/soulai-app/soulai/internal/domain"

// DefaultProfiles is the built-in discoverable set, used when no catalog
// snapshot exists or the stored one is malformed.
func DefaultProfiles() []domain.Profile {
	return []domain.Profile{
		{
			ID:         "1",
			Name:       "Sarah",
			Age:        26,
			Bio:        "Adventure seeker and amateur chef. I love hiking on weekends and trying out new pasta recipes. Looking for someone who can keep up with my energy!",
			Interests:  []string{"Hiking", "Cooking", "Travel", "Photography"},
			ImageURL:   "https://picsum.photos/seed/sarah/600/800",
			Location:   "San Francisco, CA",
			Occupation: "Graphic Designer",
		},
		{
			ID:         "2",
			Name:       "Marcus",
			Age:        29,
			Bio:        "Tech enthusiast by day, jazz pianist by night. I appreciate good coffee, vinyl records, and deep conversations about the future of AI.",
			Interests:  []string{"Music", "AI", "Coffee", "Piano"},
			ImageURL:   "https://picsum.photos/seed/marcus/600/800",
			Location:   "Austin, TX",
			Occupation: "Software Engineer",
		},
		{
			ID:         "3",
			Name:       "Elena",
			Age:        24,
			Bio:        "Yoga instructor and plant parent. I believe in mindfulness and kindness. Let's explore the local farmers market together.",
			Interests:  []string{"Yoga", "Gardening", "Health", "Meditation"},
			ImageURL:   "https://picsum.photos/seed/elena/600/800",
			Location:   "Portland, OR",
			Occupation: "Yoga Teacher",
		},
		{
			ID:         "4",
			Name:       "David",
			Age:        31,
			Bio:        "I run marathons and read historical fiction. Always looking for the next big challenge. I make a mean sourdough bread.",
			Interests:  []string{"Running", "Reading", "Baking", "History"},
			ImageURL:   "https://picsum.photos/seed/david/600/800",
			Location:   "Chicago, IL",
			Occupation: "Architect",
		},
		{
			ID:         "5",
			Name:       "Chloe",
			Age:        27,
			Bio:        "Astrophysics student and sci-fi nerd. I can probably beat you at any board game. Ask me about the James Webb telescope!",
			Interests:  []string{"Science", "Board Games", "Sci-Fi", "Astronomy"},
			ImageURL:   "https://picsum.photos/seed/chloe/600/800",
			Location:   "Boston, MA",
			Occupation: "Research Assistant",
		},
	}
}

// DefaultSelf is the built-in current-user profile.
func DefaultSelf() domain.Profile {
	return domain.Profile{
		ID:         "me",
		Name:       "Alex",
		Age:        28,
		Bio:        "Just a regular human trying to find another regular human to do human things with. I like pizza and long walks on the beach (unironically).",
		Interests:  []string{"Pizza", "Walking", "Tech", "Movies"},
		ImageURL:   "https://picsum.photos/seed/alex/600/800",
		Location:   "New York, NY",
		Occupation: "Product Manager",
	}
}
