package badge

import (
	"encoding/json"
	"fmt"
)

func threshold(n int) *int { return &n }

// Catalog is the full static badge dataset. Defined at build time, never
// mutated at runtime.
var Catalog = []Badge{
	// Earnable achievements
	{
		ID:          "starstruck",
		Name:        "Starstruck",
		Emoji:       "⭐",
		Description: "Create a repository that captures the community's attention.",
		HowToEarn:   "Have a repository that receives stars.",
		Type:        TypeAchievement,
		Rarity:      RarityCommon,
		Category:    CategoryCommunity,
		Tiers: []Tier{
			{Name: "Base", Requirement: "16 stars", Threshold: threshold(16)},
			{Name: "Bronze", Requirement: "128 stars", Threshold: threshold(128)},
			{Name: "Silver", Requirement: "512 stars", Threshold: threshold(512)},
			{Name: "Gold", Requirement: "4096 stars", Threshold: threshold(4096)},
		},
	},
	{
		ID:          "quickdraw",
		Name:        "Quickdraw",
		Emoji:       "⚡",
		Description: "Fastest fingers in the west.",
		HowToEarn:   "Close an issue or pull request within 5 minutes of opening it.",
		Type:        TypeAchievement,
		Rarity:      RarityRare,
		Category:    CategoryWorkflow,
		Notes:       "This is a one-time achievement.",
	},
	{
		ID:          "pair-extraordinaire",
		Name:        "Pair Extraordinaire",
		Emoji:       "👯",
		Description: "Collaborate with others on code.",
		HowToEarn:   "Co-author commits in a merged pull request.",
		Type:        TypeAchievement,
		Rarity:      RarityCommon,
		Category:    CategoryContribution,
		Tiers: []Tier{
			{Name: "Base", Requirement: "10 points", Threshold: threshold(10)},
			{Name: "Bronze", Requirement: "24 points", Threshold: threshold(24)},
			{Name: "Silver", Requirement: "48 points", Threshold: threshold(48)},
			{Name: "Gold", Requirement: "1024 points", Threshold: threshold(1024)},
		},
	},
	{
		ID:          "pull-shark",
		Name:        "Pull Shark",
		Emoji:       "🦈",
		Description: "The lifeblood of open source.",
		HowToEarn:   "Have pull requests merged.",
		Type:        TypeAchievement,
		Rarity:      RarityCommon,
		Category:    CategoryContribution,
		Tiers: []Tier{
			{Name: "Base", Requirement: "2 PRs", Threshold: threshold(2)},
			{Name: "Bronze", Requirement: "16 PRs", Threshold: threshold(16)},
			{Name: "Silver", Requirement: "128 PRs", Threshold: threshold(128)},
			{Name: "Gold", Requirement: "1024 PRs", Threshold: threshold(1024)},
		},
	},
	{
		ID:          "galaxy-brain",
		Name:        "Galaxy Brain",
		Emoji:       "🧠",
		Description: "Providing the answers everyone needs.",
		HowToEarn:   "Have your answers accepted in GitHub Discussions.",
		Type:        TypeAchievement,
		Rarity:      RarityRare,
		Category:    CategoryCommunity,
		Tiers: []Tier{
			{Name: "Base", Requirement: "2 answers", Threshold: threshold(2)},
			{Name: "Bronze", Requirement: "8 answers", Threshold: threshold(8)},
			{Name: "Silver", Requirement: "16 answers", Threshold: threshold(16)},
			{Name: "Gold", Requirement: "32 answers", Threshold: threshold(32)},
		},
	},
	{
		ID:          "yolo",
		Name:        "YOLO",
		Emoji:       "🚀",
		Description: "Living dangerously.",
		HowToEarn:   "Merge a pull request without code review.",
		Type:        TypeAchievement,
		Rarity:      RarityLegendary,
		Category:    CategoryWorkflow,
		Notes:       "Requires a repository that enforces code review (Pro/Team feature) where you force merge as admin.",
	},
	{
		ID:          "public-sponsor",
		Name:        "Public Sponsor",
		Emoji:       "💖",
		Description: "Supporting the ecosystem.",
		HowToEarn:   "Sponsor an open source contributor via GitHub Sponsors.",
		Type:        TypeAchievement,
		Rarity:      RarityCommon,
		Category:    CategoryCommunity,
	},
	// Highlights
	{
		ID:          "github-pro",
		Name:        "GitHub Pro",
		Emoji:       "🔶",
		Description: "Member of GitHub Pro.",
		HowToEarn:   "Subscribe to GitHub Pro plan.",
		Type:        TypeHighlight,
		Rarity:      RarityCommon,
		Category:    CategoryMembership,
	},
	{
		ID:          "developer-program",
		Name:        "Developer Program Member",
		Emoji:       "🛠️",
		Description: "Registered developer program member.",
		HowToEarn:   "Register for the GitHub Developer Program (free).",
		Type:        TypeHighlight,
		Rarity:      RarityCommon,
		Category:    CategoryMembership,
	},
	{
		ID:          "security-bounty",
		Name:        "Security Bug Bounty Hunter",
		Emoji:       "🐛",
		Description: "Helping keep GitHub secure.",
		HowToEarn:   "Find and report a valid security vulnerability in GitHub.",
		Type:        TypeHighlight,
		Rarity:      RarityLegendary,
		Category:    CategorySecurity,
	},
	// Retired / unreleased
	{
		ID:          "arctic-code-vault",
		Name:        "Arctic Code Vault Contributor",
		Emoji:       "❄️",
		Description: "Code preserved for future generations.",
		HowToEarn:   "Contributed to specific repos before 02/02/2020.",
		Type:        TypeRetired,
		Rarity:      RarityEpic,
		Category:    CategorySpecial,
		Notes:       "Retired / Legacy",
	},
	{
		ID:          "mars-2020",
		Name:        "Mars 2020 Contributor",
		Emoji:       "🚁",
		Description: "Code that flies on another planet.",
		HowToEarn:   "Contributed to repositories used in the Mars 2020 Helicopter mission.",
		Type:        TypeRetired,
		Rarity:      RarityLegendary,
		Category:    CategorySpecial,
		Notes:       "Retired / Legacy",
	},
	{
		ID:          "heart-on-sleeve",
		Name:        "Heart On Your Sleeve",
		Emoji:       "👕",
		Description: "Unreleased achievement.",
		HowToEarn:   "Not currently obtainable.",
		Type:        TypeRetired,
		Rarity:      RarityRare,
		Category:    CategorySpecial,
		Notes:       "Unreleased",
	},
}

// GuideStep is one step of an earn guide.
type GuideStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Guide is a step-by-step walkthrough for earning one badge.
type Guide struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	BadgeID string      `json:"badgeId"`
	Steps   []GuideStep `json:"steps"`
	Tips    []string    `json:"tips"`
}

var Guides = []Guide{
	{
		ID:      "guide-quickdraw",
		Title:   "How to earn \"Quickdraw\" ⚡",
		BadgeID: "quickdraw",
		Steps: []GuideStep{
			{Title: "Create a Repository", Description: "Create a temporary public repository."},
			{Title: "Open an Issue", Description: "Create a new issue with any title."},
			{Title: "Close Immediately", Description: "Immediately click the \"Close issue\" button. It must be done within 5 minutes."},
			{Title: "Wait", Description: "The badge should appear on your profile within a few hours."},
		},
		Tips: []string{
			"You can also do this with a Pull Request, but an Issue is faster.",
			"Ensure the repo is public.",
		},
	},
	{
		ID:      "guide-galaxy-brain",
		Title:   "How to earn \"Galaxy Brain\" 🧠",
		BadgeID: "galaxy-brain",
		Steps: []GuideStep{
			{Title: "Find a Discussion", Description: "Find a repository that uses GitHub Discussions (e.g., Next.js, Vercel repos)."},
			{Title: "Answer a Question", Description: "Look for \"Unanswered\" questions in the Q&A category."},
			{Title: "Get Accepted", Description: "The original poster must mark your reply as the \"Answer\"."},
			{Title: "Repeat", Description: "You need 2 accepted answers for the Base tier."},
		},
		Tips: []string{
			"You can enable Discussions on your own repo and answer questions from others, but do not sock-puppet accounts (it violates TOS).",
		},
	},
}

// FAQ is a frequently asked question about how achievements behave.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var FAQs = []FAQ{
	{
		Question: "Can I hide achievements from my profile?",
		Answer:   "Yes. Click on the achievement on your profile, and there is a toggle to hide it. It will remain in your list but won't be visible to others.",
	},
	{
		Question: "How do private achievements work?",
		Answer:   "Achievements earned in private repositories will show up as 'Private contributions' if you have enabled private contributions in your profile settings. The specific repo details will be hidden.",
	},
	{
		Question: "Why hasn't my achievement appeared yet?",
		Answer:   "Achievements are processed asynchronously. It can take anywhere from a few minutes to 24 hours for a badge to appear. Also, ensure your contributions are associated with the email address on your GitHub account.",
	},
	{
		Question: "Can achievements disappear?",
		Answer:   "Generally no, unless the repository you contributed to is deleted or made private (and you don't show private contribs), or if the criteria are revoked (e.g., an accepted answer is unmarked).",
	},
}

// ByID returns the badge with the given id, or nil.
func ByID(id string) *Badge {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// SystemContext renders the full dataset as a system instruction for the
// chat assistant.
func SystemContext() string {
	badgesJSON, _ := json.Marshal(Catalog)
	guidesJSON, _ := json.Marshal(Guides)
	faqsJSON, _ := json.Marshal(FAQs)

	return fmt.Sprintf(`You are an assistant for the "badgehunt" app. Your goal is to help users understand how to get specific GitHub badges.
Here is the complete database of badges:
%s

Here are some guides:
%s

Here are common FAQs:
%s

Rules:
1. Be helpful and enthusiastic.
2. If asked about a badge not in the list, state it might not exist or might be new.
3. Keep answers concise.
4. Use the emojis associated with the badges.
`, badgesJSON, guidesJSON, faqsJSON)
}
