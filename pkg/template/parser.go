// parser.go — Sample document generation.
package template

// ExampleJSON returns a sample cards.json for statuscards init.
func ExampleJSON() string {
	return `{
  "theme": {
    "card_width": 400,
    "card_padding": 20,
    "background": "#0d1117",
    "text_primary": "#e6edf3",
    "text_secondary": "#8b949e"
  },
  "output": "assets/cards",
  "cards": [
    {
      "id": "void",
      "icon": "◎",
      "title": "Void",
      "description": "A minimal terminal workspace that gets out of the way and lets the work speak for itself.",
      "tagline": "Less chrome, more code.",
      "status": {
        "type": "static",
        "text": "Stable",
        "color": "#10B981"
      }
    },
    {
      "id": "swarm",
      "icon": "⬡",
      "title": "Swarm",
      "description": "Multi-agent orchestration that plans, builds, tests and ships in coordinated waves.",
      "tagline": "Many hands, one pipeline.",
      "status": {
        "type": "animated",
        "phases": [
          { "text": "Planning", "color": "#F59E0B" },
          { "text": "Building", "color": "#58A6FF" }
        ],
        "dot_cycles": 3
      }
    }
  ]
}
`
}
