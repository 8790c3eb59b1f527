package generation

import "github.com/arowley/prepsprint/internal/domain"

// Topic is a study subject with a priority tier. High-tier topics surface on
// earlier sprint days.
type Topic struct {
	Name string
	Tier domain.TopicTier
}

// PrepSection is the preparation material for one interview stage of a role:
// topics to study, questions to rehearse, and tips for the quick block.
type PrepSection struct {
	Round           domain.RoundType
	Focus           domain.FocusArea
	Topics          []Topic
	SampleQuestions []string
	Tips            []string
}

// RoleTemplate is the static preparation template for one role type.
// FocusOrder is the priority order the generator cycles day focus through.
type RoleTemplate struct {
	Role       domain.RoleType
	FocusOrder []domain.FocusArea
	Sections   []PrepSection
}

// hrSection is shared by every role: a generic behavioral stage.
var hrSection = PrepSection{
	Round: domain.RoundHR,
	Focus: domain.FocusBehavioral,
	Topics: []Topic{
		{Name: "STAR stories for key projects", Tier: domain.TierHigh},
		{Name: "Why this company / why this role", Tier: domain.TierHigh},
		{Name: "Conflict and feedback situations", Tier: domain.TierMedium},
		{Name: "Strengths, weaknesses, growth areas", Tier: domain.TierMedium},
		{Name: "Compensation expectations", Tier: domain.TierLow},
	},
	SampleQuestions: []string{
		"Tell me about yourself.",
		"Describe a project you are most proud of and your role in it.",
		"Tell me about a time you disagreed with a teammate.",
		"Why are you leaving your current position?",
		"Where do you see yourself in three years?",
	},
	Tips: []string{
		"Keep each STAR answer under two minutes.",
		"Prepare two questions to ask the interviewer.",
		"Quantify outcomes: numbers beat adjectives.",
	},
}

var dsaCoreTopics = []Topic{
	{Name: "Arrays and two pointers", Tier: domain.TierHigh},
	{Name: "Hash maps and sets", Tier: domain.TierHigh},
	{Name: "Binary search variants", Tier: domain.TierHigh},
	{Name: "Trees and BFS/DFS", Tier: domain.TierMedium},
	{Name: "Heaps and priority queues", Tier: domain.TierMedium},
	{Name: "Dynamic programming patterns", Tier: domain.TierMedium},
	{Name: "Graphs and topological sort", Tier: domain.TierLow},
	{Name: "Bit manipulation", Tier: domain.TierLow},
}

var dsaQuestions = []string{
	"Find the longest substring without repeating characters.",
	"Merge k sorted lists.",
	"Design an LRU cache.",
	"Detect a cycle in a directed graph.",
	"Serialize and deserialize a binary tree.",
}

var dsaTips = []string{
	"Talk through brute force before optimizing.",
	"State time and space complexity unprompted.",
	"Test your solution on an edge case before declaring done.",
}

func dsaSection(round domain.RoundType) PrepSection {
	return PrepSection{
		Round:           round,
		Focus:           domain.FocusDSA,
		Topics:          dsaCoreTopics,
		SampleQuestions: dsaQuestions,
		Tips:            dsaTips,
	}
}

var roleTemplates = map[domain.RoleType]*RoleTemplate{
	domain.RoleBackend: {
		Role:       domain.RoleBackend,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusSystemDesign, domain.FocusCoreCS, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			dsaSection(domain.RoundTechnical1),
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Load balancing and horizontal scaling", Tier: domain.TierHigh},
					{Name: "Caching strategies and invalidation", Tier: domain.TierHigh},
					{Name: "Database sharding and replication", Tier: domain.TierMedium},
					{Name: "Message queues and async processing", Tier: domain.TierMedium},
					{Name: "Rate limiting and backpressure", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Design a URL shortener.",
					"Design a news feed with fan-out.",
					"Design a distributed rate limiter.",
				},
				Tips: []string{
					"Clarify scale requirements before drawing boxes.",
					"Always discuss the data model and its access patterns.",
				},
			},
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Transactions and isolation levels", Tier: domain.TierHigh},
					{Name: "HTTP, REST and gRPC semantics", Tier: domain.TierHigh},
					{Name: "Concurrency primitives and deadlocks", Tier: domain.TierMedium},
					{Name: "OS processes, threads, memory", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"What happens when two transactions update the same row?",
					"How would you debug a memory leak in a long-running service?",
				},
				Tips: []string{
					"Relate every core-CS answer back to a production incident you handled.",
				},
			},
		},
	},
	domain.RoleFrontend: {
		Role:       domain.RoleFrontend,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusCoreCS, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			dsaSection(domain.RoundTechnical1),
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "JavaScript closures, event loop, promises", Tier: domain.TierHigh},
					{Name: "Rendering pipeline and reflow/repaint", Tier: domain.TierHigh},
					{Name: "State management patterns", Tier: domain.TierMedium},
					{Name: "Accessibility fundamentals", Tier: domain.TierMedium},
					{Name: "Browser storage and caching", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Implement a debounce function.",
					"Explain what happens between typing a URL and the page rendering.",
					"Build an autocomplete component; how do you handle races?",
				},
				Tips: []string{
					"Sketch component boundaries before writing JSX.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Frontend performance budgets and lazy loading", Tier: domain.TierHigh},
					{Name: "Design systems and component APIs", Tier: domain.TierMedium},
					{Name: "Offline-first and sync strategies", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Design an infinite-scroll photo feed for mobile web.",
					"Design a collaborative text editor frontend.",
				},
				Tips: []string{
					"Mention measurement (Core Web Vitals) when discussing performance.",
				},
			},
		},
	},
	domain.RoleFullstack: {
		Role:       domain.RoleFullstack,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusSystemDesign, domain.FocusCoreCS, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			dsaSection(domain.RoundTechnical1),
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "API design and versioning", Tier: domain.TierHigh},
					{Name: "Auth flows: sessions, JWT, OAuth", Tier: domain.TierHigh},
					{Name: "Caching across the stack", Tier: domain.TierMedium},
					{Name: "Deployment and rollback strategies", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Design a checkout flow end to end.",
					"Design a notification system with web and email channels.",
				},
				Tips: []string{
					"Show you can move between frontend and backend trade-offs in one answer.",
				},
			},
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "SQL joins, indexes, query plans", Tier: domain.TierHigh},
					{Name: "HTTP caching and CDNs", Tier: domain.TierMedium},
					{Name: "Web security: XSS, CSRF, injection", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Walk through securing a form submission end to end.",
					"Why is this query slow, and how would you find out?",
				},
				Tips: []string{
					"Name the exact header or index you would add, not just the concept.",
				},
			},
		},
	},
	domain.RoleMobile: {
		Role:       domain.RoleMobile,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusCoreCS, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			dsaSection(domain.RoundTechnical1),
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "App lifecycle and state restoration", Tier: domain.TierHigh},
					{Name: "Main-thread discipline and async work", Tier: domain.TierHigh},
					{Name: "Memory management and leaks", Tier: domain.TierMedium},
					{Name: "Offline storage and sync", Tier: domain.TierMedium},
					{Name: "Push notifications and deep links", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"How do you keep a scrolling list at 60fps?",
					"Design the offline mode for a messaging app.",
				},
				Tips: []string{
					"Bring profiling numbers from a real app you shipped.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Client-server sync protocols", Tier: domain.TierHigh},
					{Name: "Media upload and caching", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Design a photo-sharing app for flaky networks.",
				},
				Tips: []string{
					"Battery and bandwidth are design constraints; say so early.",
				},
			},
		},
	},
	domain.RoleDevOps: {
		Role:       domain.RoleDevOps,
		FocusOrder: []domain.FocusArea{domain.FocusCoreCS, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			{
				Round: domain.RoundTechnical1,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Linux internals and troubleshooting", Tier: domain.TierHigh},
					{Name: "Containers and orchestration", Tier: domain.TierHigh},
					{Name: "CI/CD pipeline design", Tier: domain.TierMedium},
					{Name: "Infrastructure as code", Tier: domain.TierMedium},
					{Name: "Networking: DNS, TLS, routing", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"A deploy doubled p99 latency; walk me through your first ten minutes.",
					"Design a zero-downtime deployment pipeline.",
				},
				Tips: []string{
					"Narrate diagnosis as a decision tree, not a list of commands.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Monitoring, alerting, SLOs", Tier: domain.TierHigh},
					{Name: "Multi-region failover", Tier: domain.TierMedium},
					{Name: "Secrets management", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Design the observability stack for 200 microservices.",
				},
				Tips: []string{
					"Tie every alert you propose to a user-visible symptom.",
				},
			},
		},
	},
	domain.RoleDataEngineer: {
		Role:       domain.RoleDataEngineer,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			{
				Round: domain.RoundTechnical1,
				Focus: domain.FocusDSA,
				Topics: []Topic{
					{Name: "SQL window functions and aggregation", Tier: domain.TierHigh},
					{Name: "Hash maps and sorting at scale", Tier: domain.TierHigh},
					{Name: "Streaming algorithms and sketches", Tier: domain.TierMedium},
					{Name: "Graph traversal for lineage", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Deduplicate a billion records with limited memory.",
					"Find the top-k items in a click stream.",
				},
				Tips: []string{
					"State data volumes before choosing an approach.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Batch vs streaming pipeline trade-offs", Tier: domain.TierHigh},
					{Name: "Schema evolution and data contracts", Tier: domain.TierHigh},
					{Name: "Partitioning and file formats", Tier: domain.TierMedium},
					{Name: "Backfills and idempotent jobs", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Design a daily ETL pipeline with late-arriving data.",
					"Design change-data-capture from an OLTP store to a warehouse.",
				},
				Tips: []string{
					"Mention exactly-once vs at-least-once semantics explicitly.",
				},
			},
		},
	},
	domain.RoleDataScientist: {
		Role:       domain.RoleDataScientist,
		FocusOrder: []domain.FocusArea{domain.FocusCoreCS, domain.FocusDSA, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			{
				Round: domain.RoundTechnical1,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Hypothesis testing and p-values", Tier: domain.TierHigh},
					{Name: "Regression and regularization", Tier: domain.TierHigh},
					{Name: "Experiment design and A/B pitfalls", Tier: domain.TierHigh},
					{Name: "Feature engineering and leakage", Tier: domain.TierMedium},
					{Name: "Bayesian reasoning basics", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"An A/B test shows +2% with p=0.04; ship it?",
					"How do you detect and handle data leakage?",
				},
				Tips: []string{
					"Lead with the business metric, then the statistics.",
				},
			},
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusDSA,
				Topics: []Topic{
					{Name: "Pandas/SQL data manipulation", Tier: domain.TierHigh},
					{Name: "Probability puzzles", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Compute a 7-day rolling retention in SQL.",
				},
				Tips: []string{
					"Write the query skeleton first, fill in details second.",
				},
			},
		},
	},
	domain.RoleMLEngineer: {
		Role:       domain.RoleMLEngineer,
		FocusOrder: []domain.FocusArea{domain.FocusDSA, domain.FocusCoreCS, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			dsaSection(domain.RoundTechnical1),
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Training vs serving skew", Tier: domain.TierHigh},
					{Name: "Model evaluation metrics", Tier: domain.TierHigh},
					{Name: "Embeddings and retrieval", Tier: domain.TierMedium},
					{Name: "Quantization and latency budgets", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Your offline AUC improved but online CTR dropped; why?",
					"Design the feature store interface for a ranking model.",
				},
				Tips: []string{
					"Treat the model as one component of a system, and say so.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "Batch and online inference architecture", Tier: domain.TierHigh},
					{Name: "Model rollout, shadowing, canaries", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Design a recommendation system serving 10k requests per second.",
				},
				Tips: []string{
					"Cover monitoring for model drift, not just uptime.",
				},
			},
		},
	},
	domain.RoleSRE: {
		Role:       domain.RoleSRE,
		FocusOrder: []domain.FocusArea{domain.FocusCoreCS, domain.FocusSystemDesign, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			{
				Round: domain.RoundTechnical1,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Linux performance analysis", Tier: domain.TierHigh},
					{Name: "TCP/IP and debugging network paths", Tier: domain.TierHigh},
					{Name: "Incident response and postmortems", Tier: domain.TierMedium},
					{Name: "Scripting for automation", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Load average is high but CPU is idle; what do you check?",
					"Walk through a full incident from page to postmortem.",
				},
				Tips: []string{
					"Use USE/RED method vocabulary when triaging aloud.",
				},
			},
			{
				Round: domain.RoundSystemDesign,
				Focus: domain.FocusSystemDesign,
				Topics: []Topic{
					{Name: "SLOs, error budgets, alerting design", Tier: domain.TierHigh},
					{Name: "Capacity planning and load shedding", Tier: domain.TierMedium},
					{Name: "Chaos testing", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"Define SLOs for a payments API and the alerts behind them.",
				},
				Tips: []string{
					"Every nine you promise has a cost; quantify it.",
				},
			},
		},
	},
	domain.RoleQA: {
		Role:       domain.RoleQA,
		FocusOrder: []domain.FocusArea{domain.FocusCoreCS, domain.FocusDSA, domain.FocusBehavioral},
		Sections: []PrepSection{
			hrSection,
			{
				Round: domain.RoundTechnical1,
				Focus: domain.FocusCoreCS,
				Topics: []Topic{
					{Name: "Test pyramid and strategy", Tier: domain.TierHigh},
					{Name: "API and contract testing", Tier: domain.TierHigh},
					{Name: "Test automation frameworks", Tier: domain.TierMedium},
					{Name: "Performance and load testing", Tier: domain.TierMedium},
					{Name: "Flaky-test forensics", Tier: domain.TierLow},
				},
				SampleQuestions: []string{
					"How would you test a login page? Go beyond the obvious.",
					"A test passes locally and fails in CI; where do you start?",
				},
				Tips: []string{
					"Frame bugs by user impact, then by root cause.",
				},
			},
			{
				Round: domain.RoundTechnical2,
				Focus: domain.FocusDSA,
				Topics: []Topic{
					{Name: "String processing for test data", Tier: domain.TierHigh},
					{Name: "Sets and maps for result diffing", Tier: domain.TierMedium},
				},
				SampleQuestions: []string{
					"Write a diff between two lists of test results.",
				},
				Tips: []string{
					"Mention the oracle problem if asked about generative testing.",
				},
			},
		},
	},
}

// TemplateFor returns the preparation template for a role.
func TemplateFor(role domain.RoleType) (*RoleTemplate, bool) {
	t, ok := roleTemplates[role]
	return t, ok
}

// SectionFor returns the preparation material for a (role, round) pair.
// Every role shares the generic HR section.
func SectionFor(role domain.RoleType, round domain.RoundType) (*PrepSection, bool) {
	t, ok := roleTemplates[role]
	if !ok {
		return nil, false
	}
	for i := range t.Sections {
		if t.Sections[i].Round == round {
			return &t.Sections[i], true
		}
	}
	return nil, false
}

// sectionByFocus returns the section whose focus matches, or nil.
func (t *RoleTemplate) sectionByFocus(focus domain.FocusArea) *PrepSection {
	for i := range t.Sections {
		if t.Sections[i].Focus == focus {
			return &t.Sections[i]
		}
	}
	return nil
}

// orderedTopics returns a focus section's topics in tier-major order
// (high, then medium, then low), preserving declaration order within a tier.
func (t *RoleTemplate) orderedTopics(focus domain.FocusArea) []Topic {
	section := t.sectionByFocus(focus)
	if section == nil {
		return nil
	}
	var ordered []Topic
	for _, tier := range []domain.TopicTier{domain.TierHigh, domain.TierMedium, domain.TierLow} {
		for _, topic := range section.Topics {
			if topic.Tier == tier {
				ordered = append(ordered, topic)
			}
		}
	}
	return ordered
}

// highTierTopics returns every high-tier topic across the role's sections,
// in section order. Used for review-day content.
func (t *RoleTemplate) highTierTopics() []Topic {
	var topics []Topic
	for _, section := range t.Sections {
		for _, topic := range section.Topics {
			if topic.Tier == domain.TierHigh {
				topics = append(topics, topic)
			}
		}
	}
	return topics
}

// allQuestions returns every sample question across the role's sections,
// technical sections first. Used for mock-day content.
func (t *RoleTemplate) allQuestions() []string {
	var questions []string
	for _, section := range t.Sections {
		if section.Round == domain.RoundHR {
			continue
		}
		questions = append(questions, section.SampleQuestions...)
	}
	for _, section := range t.Sections {
		if section.Round == domain.RoundHR {
			questions = append(questions, section.SampleQuestions...)
		}
	}
	return questions
}
