package fallback

// step is one week of a role track
type step struct {
	Topic    string
	Practice string
	Project  string
}

// track is a role-keyed 4-step curriculum. Keywords match anywhere in the
// compacted title; Tokens must equal a whole word of the title.
type track struct {
	Key      string
	Keywords []string
	Tokens   []string
	Steps    [4]step
}

// tracks are matched in order; the first hit wins.
var tracks = []track{
	{
		Key:      "frontend",
		Keywords: []string{"frontend", "webdeveloper"},
		Steps: [4]step{
			{"Semantic HTML and modern CSS layout", "Rebuild a landing page with flexbox and grid", "Responsive personal profile page"},
			{"JavaScript fundamentals and the DOM", "Add interactive form validation to the page", "Interactive to-do list"},
			{"Component-based UI with a modern framework", "Split the to-do list into reusable components", "Multi-view app with client-side routing"},
			{"Accessibility, performance and deployment", "Audit the app with Lighthouse and fix the top issues", "Capstone: deploy a polished single-page app"},
		},
	},
	{
		Key:      "backend",
		Keywords: []string{"backend", "serverside"},
		Steps: [4]step{
			{"HTTP, REST and request handling", "Write a small HTTP service with two endpoints", "Health-checked JSON API"},
			{"Relational data modeling and SQL", "Design a schema and write CRUD queries", "API backed by a real database"},
			{"Authentication, validation and error handling", "Add input validation and structured errors", "Hardened API with tests"},
			{"Deployment, logging and monitoring", "Containerize the service and add structured logs", "Capstone: deploy a production-style backend service"},
		},
	},
	{
		Key:      "data",
		Keywords: []string{"data", "analyst", "analytics"},
		Steps: [4]step{
			{"Spreadsheet and SQL basics for analysis", "Answer five questions about a public dataset with SQL", "Dataset question log"},
			{"Data cleaning and exploratory analysis", "Clean a messy CSV and summarize its distributions", "Exploratory analysis notebook"},
			{"Visualization and storytelling with charts", "Build three charts that explain one trend", "Annotated chart deck"},
			{"Dashboards and reporting", "Assemble a dashboard with filters", "Capstone: end-to-end analysis report with a dashboard"},
		},
	},
	{
		Key:      "design",
		Keywords: []string{"design"},
		Tokens:   []string{"ux"},
		Steps: [4]step{
			{"Design principles and visual hierarchy", "Redesign one screen of an app you use", "Before-and-after screen study"},
			{"User research and personas", "Interview two people and write a persona", "Research summary"},
			{"Wireframing and prototyping", "Prototype a three-screen flow", "Clickable prototype"},
			{"Usability testing and iteration", "Run a usability test and list the fixes", "Capstone: case study for a portfolio"},
		},
	},
	{
		Key:      "mobile",
		Keywords: []string{"mobile", "android"},
		Tokens:   []string{"ios"},
		Steps: [4]step{
			{"Mobile platform basics and tooling", "Set up an emulator and run a starter app", "Hello-world mobile app"},
			{"Layouts, navigation and state", "Build a two-screen app with navigation", "Notes app with local state"},
			{"Networking and local storage", "Fetch remote data and cache it on device", "Offline-capable reader app"},
			{"Testing and store release preparation", "Write UI tests and prepare release assets", "Capstone: publish-ready mobile app"},
		},
	},
	{
		Key:      "product",
		Keywords: []string{"product"},
		Steps: [4]step{
			{"Product thinking and problem framing", "Write a problem statement for a real pain point", "One-page problem brief"},
			{"User discovery and prioritization", "Rank ten feature ideas with a scoring framework", "Prioritized backlog"},
			{"Roadmaps, specs and metrics", "Draft a spec with success metrics", "Feature spec"},
			{"Launch planning and stakeholder communication", "Write a launch plan and a status update", "Capstone: product proposal presentation"},
		},
	},
	{
		Key:      "security",
		Keywords: []string{"security", "cyber"},
		Steps: [4]step{
			{"Security fundamentals and threat models", "Threat-model a simple web app", "Threat model document"},
			{"Networking and common attack vectors", "Capture and read traffic in a lab network", "Traffic analysis notes"},
			{"Web application vulnerabilities", "Exploit and fix issues in a deliberately vulnerable app", "Vulnerability write-up"},
			{"Detection, response and hardening", "Write detection rules and a hardening checklist", "Capstone: security assessment report"},
		},
	},
	{
		Key:      "cloud",
		Keywords: []string{"cloud"},
		Steps: [4]step{
			{"Cloud service models and core services", "Launch a virtual machine and object storage bucket", "Static site hosted in the cloud"},
			{"Networking, identity and access", "Configure a private network and least-privilege roles", "Secured cloud environment"},
			{"Infrastructure as code", "Describe the environment with an IaC tool", "Reproducible environment template"},
			{"Cost, reliability and monitoring", "Set budgets, alerts and a dashboard", "Capstone: highly available cloud deployment"},
		},
	},
	{
		Key:      "ml",
		Keywords: []string{"machinelearning"},
		Tokens:   []string{"ml"},
		Steps: [4]step{
			{"Python, statistics and linear algebra refresh", "Solve practice problems with NumPy", "Statistics notebook"},
			{"Supervised learning basics", "Train and evaluate a classifier", "Baseline model report"},
			{"Feature engineering and model evaluation", "Improve the baseline with new features", "Model comparison notebook"},
			{"Serving and monitoring models", "Wrap the model in a small prediction API", "Capstone: deployed machine learning model"},
		},
	},
	{
		Key:      "devops",
		Keywords: []string{"devops", "reliability", "platform"},
		Tokens:   []string{"sre"},
		Steps: [4]step{
			{"Linux, shell and version control", "Automate a daily task with a shell script", "Scripted dev environment setup"},
			{"Containers and images", "Containerize a sample app", "Multi-container app with compose"},
			{"CI/CD pipelines", "Build a pipeline that tests and packages the app", "Automated build pipeline"},
			{"Orchestration, observability and on-call", "Deploy to a cluster and add metrics", "Capstone: monitored continuous delivery setup"},
		},
	},
}
