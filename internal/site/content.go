package site

type feature struct {
	Title       string
	Description string
	Details     []string
}

var features = []feature{
	{
		Title:       "Real-time Road Monitoring",
		Description: "Continuously collects road data using smartphone sensors, providing up-to-the-minute insights into road conditions.",
		Details:     []string{"Smartphone sensor integration", "Continuous data collection", "Real-time processing", "Instant condition updates"},
	},
	{
		Title:       "AI Anomaly Detection",
		Description: "Advanced machine learning models (XGBoost) detect road issues such as potholes with high accuracy.",
		Details:     []string{"XGBoost algorithm", "Pattern recognition", "Automated issue detection", "High accuracy rates"},
	},
	{
		Title:       "Interactive Dashboard",
		Description: "Provides real-time heatmaps and condition summaries to help authorities improve maintenance planning.",
		Details:     []string{"Real-time heatmaps", "Condition analytics", "Maintenance planning tools", "Data visualization"},
	},
	{
		Title:       "Driver Alerts & Reports",
		Description: "Sends real-time alerts and generates comprehensive session-based reports for drivers.",
		Details:     []string{"Instant notifications", "Detailed reports", "Session tracking", "Performance metrics"},
	},
	{
		Title:       "Cost-effective & Scalable",
		Description: "Uses smartphones instead of expensive vehicles, making it highly scalable and affordable.",
		Details:     []string{"Smartphone-based solution", "Minimal infrastructure", "Easy deployment", "Cost-effective scaling"},
	},
	{
		Title:       "Community-Driven Approach",
		Description: "Leverages crowdsourced data from users to build a comprehensive database of road conditions.",
		Details:     []string{"Crowdsourced data collection", "Community contribution system", "Data validation mechanism", "Continuous improvement"},
	},
}

var benefits = []feature{
	{
		Title: "For Drivers",
		Details: []string{
			"Avoid road hazards and damage to vehicles",
			"Save time with optimal route planning",
			"Contribute to safer road infrastructure",
			"Access detailed trip reports and statistics",
		},
	},
	{
		Title: "For Municipalities",
		Details: []string{
			"Prioritize maintenance based on data",
			"Reduce infrastructure maintenance costs",
			"Improve emergency response planning",
			"Better budget allocation for road projects",
		},
	},
	{
		Title: "For Communities",
		Details: []string{
			"Safer roads for all users",
			"Reduced accident rates from hazard avoidance",
			"Community engagement in infrastructure improvement",
			"Contribute to greener transportation with optimized routes",
		},
	},
}

type step struct {
	Title string
	Text  string
	Image string
}

var steps = []step{
	{
		Title: "Manual Labeling by Drivers (Phase 1)",
		Text:  "In the initial phase, drivers label road anomalies such as potholes or bumps. These labels are used to train and improve the AI model.",
		Image: "/report-form.png",
	},
	{
		Title: "AI Anomaly Detection (Phase 2)",
		Text:  "The trained AI model (XGBoost) processes the sensor data to automatically detect road issues with high accuracy.",
		Image: "/ml-visualization.png",
	},
	{
		Title: "Real-time Alerts & Dashboard Insights",
		Text:  "The system sends real-time alerts to drivers and displays road heatmaps and reports on a dashboard for city authorities.",
		Image: "/dashboard.png",
	},
	{
		Title: "Continuous Learning (Feedback Loop)",
		Text:  "The model continuously improves based on user feedback and new labeled data, making the system smarter over time.",
		Image: "/feedback-loop.png",
	},
}

const howItWorksSummary = "TAREEQI combines smartphone sensors, machine learning, and community input to make roads safer, smarter, and more manageable, all in real-time."

const mission = "TAREEQI is an AI-powered mobile and web platform designed to assess road quality using only smartphone sensors. " +
	"By turning drivers into data contributors, it empowers cities with real-time insights into road conditions. " +
	"The system supports smarter urban planning, better safety, and aligns with Vision 2030 for modern infrastructure development."

type member struct {
	Name  string
	Role  string
	Image string
}

var team = []member{
	{Name: "Bahaa AlSulaiman", Role: "Team Lead/Mobile Developer", Image: "/bahaa.png"},
	{Name: "Moath Algahtani", Role: "AI Developer", Image: "/moath.png"},
	{Name: "Zaid Alshahrari", Role: "System Analyst", Image: "/zaid.png"},
	{Name: "Sulaimman Alshamri", Role: "Full Stack Developer", Image: "/sulaiman.png"},
	{Name: "Mohab Alraddadi", Role: "Mobile Developer/UI/UX Designer", Image: "/mohab.png"},
}

var values = []feature{
	{Title: "Innovation", Description: "Pushing the boundaries of what's possible with AI and mobile technology"},
	{Title: "Impact", Description: "Making roads safer and more efficient for everyone"},
	{Title: "Excellence", Description: "Delivering the highest quality solutions and services"},
	{Title: "Collaboration", Description: "Working together to build a better future"},
}

var location = []string{
	"Jouf University",
	"College of Computer and Information Sciences",
	"Sakaka, Saudi Arabia",
}

const mapEmbedURL = "https://www.google.com/maps/embed?pb=!1m18!1m12!1m3!1d3453.1234567890123!2d40.1816113471303!3d29.960050790146333!2m3!1f0!2f0!3f0!3m2!1i1024!2i768!4f13.1!3m3!1m2!1s0x0%3A0x0!2zMjnCsDU3JzM2LjIiTiA0MMKwMTAnNTMuOCJF!5e0!3m2!1sen!2ssa!4v1234567890123!5m2!1sen!2ssa"
