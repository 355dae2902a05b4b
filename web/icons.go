package web

import "strings"

const reactIconPrefix = "react:"

// Icon identifies a symbol in one of the bundled icon sets. The sprite served under
// /static/icons.svg holds one <symbol> per registered icon, with id Set + "-" + Name.
type Icon struct {
	Set  string
	Name string
}

func (i Icon) ID() string {
	return i.Set + "-" + i.Name
}

var fallbackIcon = Icon{Set: "lucide", Name: "HelpCircle"}

// lucideIcons are the plain keys an admin can type.
var lucideIcons = map[string]Icon{}

// reactIcons are resolved from "react:<Name>" keys. Names keep their library prefix.
var reactIcons = map[string]Icon{}

// aliases are short names used by older skill rows.
var aliases = map[string]Icon{
	"React":      {Set: "ri", Name: "RiReactjsLine"},
	"Node":       {Set: "ri", Name: "RiNodejsLine"},
	"JS":         {Set: "ri", Name: "RiJavascriptLine"},
	"HTML":       {Set: "ri", Name: "RiHtml5Line"},
	"CSS":        {Set: "ri", Name: "RiCss3Line"},
	"GitHub":     {Set: "ri", Name: "RiGithubFill"},
	"SQL":        {Set: "ri", Name: "RiDatabaseLine"},
	"Tailwind":   {Set: "si", Name: "SiTailwindcss"},
	"NextJS":     {Set: "si", Name: "SiNextdotjs"},
	"TS":         {Set: "si", Name: "SiTypescript"},
	"PostgreSQL": {Set: "si", Name: "SiPostgresql"},
	"Prisma":     {Set: "si", Name: "SiPrisma"},
	"Docker":     {Set: "si", Name: "SiDocker"},
	"Framer":     {Set: "si", Name: "SiFramer"},
	"Vite":       {Set: "si", Name: "SiVite"},
	"Redux":      {Set: "si", Name: "SiRedux"},
	"GraphQL":    {Set: "si", Name: "SiGraphql"},
	"Firebase":   {Set: "si", Name: "SiFirebase"},
	"Supabase":   {Set: "si", Name: "SiSupabase"},
}

func init() {
	for _, name := range []string{
		"Code", "Code2", "Server", "Wrench", "HelpCircle", "Layout", "Database", "Cpu", "Globe",
		"Terminal", "Layers", "Container", "Cloud", "Box", "Infinity", "Smartphone", "Github",
		"Mail", "Send", "Zap", "Braces",
	} {
		lucideIcons[name] = Icon{Set: "lucide", Name: name}
	}

	for _, name := range []string{
		"RiNextjsFill", "RiTailwindCssFill", "RiReactjsLine", "RiNodejsLine", "RiJavascriptLine",
		"RiHtml5Line", "RiCss3Line", "RiGithubFill", "RiDatabaseLine",
		"FaReact", "FaCss3", "FaNodeJs", "FaGolang", "FaPython", "FaAws",
		"ImHtmlFive2",
		"SiMongodb", "SiTailwindcss", "SiNextdotjs", "SiTypescript", "SiPostgresql", "SiPrisma",
		"SiDocker", "SiFramer", "SiVite", "SiRedux", "SiGraphql", "SiFirebase", "SiSupabase",
		"SiGo", "SiRedis", "SiKubernetes",
	} {
		reactIcons[name] = Icon{Set: iconSetFor(name), Name: name}
	}
}

func iconSetFor(name string) string {
	for _, prefix := range []string{"Ri", "Fa", "Im", "Si"} {
		if strings.HasPrefix(name, prefix) {
			return strings.ToLower(prefix)
		}
	}
	return "lucide"
}

// ResolveIcon maps a stored icon key to a registered icon, falling back to HelpCircle.
func ResolveIcon(key string) Icon {
	key = strings.TrimSpace(key)

	if name, ok := strings.CutPrefix(key, reactIconPrefix); ok {
		if icon, ok := reactIcons[name]; ok {
			return icon
		}
		return fallbackIcon
	}

	if icon, ok := lucideIcons[key]; ok {
		return icon
	}
	if icon, ok := aliases[key]; ok {
		return icon
	}
	return fallbackIcon
}

// CategoryIcon picks the header icon for a skill category.
func CategoryIcon(category string) Icon {
	switch category {
	case "Frontend":
		return Icon{Set: "lucide", Name: "Code2"}
	case "Backend":
		return Icon{Set: "lucide", Name: "Server"}
	default:
		return Icon{Set: "lucide", Name: "Wrench"}
	}
}

// IconChoice is a suggestion shown on the skill form.
type IconChoice struct {
	Key   string
	Label string
	Icon  Icon
}

type IconGroup struct {
	Title   string
	Choices []IconChoice
}

// PopularIcons lists the icon suggestions offered when editing a skill.
func PopularIcons() []IconGroup {
	groups := []struct {
		title   string
		choices [][2]string
	}{
		{"Frontend Frameworks", [][2]string{
			{"react:RiNextjsFill", "Next.js"}, {"react:FaReact", "React"}, {"react:ImHtmlFive2", "HTML5"},
			{"react:FaCss3", "CSS3"}, {"react:RiTailwindCssFill", "Tailwind"},
		}},
		{"Backend & Database", [][2]string{
			{"react:FaNodeJs", "Node.js"}, {"react:SiGo", "Go"}, {"Database", "Postgres"},
			{"react:SiMongodb", "MongoDB"}, {"Server", "Server"}, {"Cloud", "Cloud"},
		}},
		{"Tools & Services", [][2]string{
			{"Github", "GitHub"}, {"Globe", "Hosting"}, {"Mail", "Email"}, {"Send", "Messaging"},
		}},
		{"UI Libraries", [][2]string{
			{"Layout", "Components"}, {"Layers", "Design System"}, {"Box", "Bootstrap"},
		}},
		{"General", [][2]string{
			{"Code", "Code"}, {"Terminal", "Terminal"}, {"Cpu", "CPU"}, {"Zap", "Performance"}, {"Braces", "API"},
		}},
	}

	out := make([]IconGroup, 0, len(groups))
	for _, g := range groups {
		group := IconGroup{Title: g.title}
		for _, c := range g.choices {
			group.Choices = append(group.Choices, IconChoice{Key: c[0], Label: c[1], Icon: ResolveIcon(c[0])})
		}
		out = append(out, group)
	}
	return out
}
