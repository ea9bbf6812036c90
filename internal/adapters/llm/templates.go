package llm

import "github.com/vayuai/vayu-agent/internal/domain"

// contextualPreamble is prefixed to an answer whenever the user has prior
// memory facts.
const contextualPreamble = "Based on our previous conversations, "

const generalTemplate = `🔍 Comprehensive Analysis:

%s represents a multifaceted concept with several key dimensions:

**Core Aspects:**
- Fundamental principles and mechanisms
- Practical applications across sectors
- Current trends and developments
- Challenges and opportunities

**Research Insights:** Studies show %s demonstrates measurable benefits when approached systematically.

**Future Outlook:** Experts predict continued evolution with transformative potential.`

const creativeTemplate = `✨ Creative Response for %q:

In a realm where imagination meets reality, %s emerges as a tapestry of endless possibilities. The essence captures the delicate balance between what is and what could be, a symphony of ideas harmonizing with innovation.

Through this lens, we explore narratives that challenge conventional wisdom and celebrate the extraordinary within the ordinary.`

const codeTemplate = `💻 Technical Implementation:

` + "```javascript" + `
class Handler {
  constructor(config) {
    this.config = config;
    this.cache = new Map();
  }

  async process(data) {
    const result = await this.execute(data);
    return this.optimize(result);
  }

  execute(data) {
    return transformData(data);
  }
}

const handler = new Handler({
  mode: 'production'
});
` + "```" + `

**Features:** Error handling, caching, async support, modular design.`

const imageTemplate = `🎨 Image Generation for %q:

**Visual Concept:** A stunning representation with vibrant colors and dynamic composition.

**Elements:**
- Composition: Asymmetrical balance
- Colors: Deep blues to warm golds
- Lighting: Dramatic three-point
- Style: Photorealism meets art

**Technical:** Resolution 4K, PNG format, maximum detail`

// sourcesByMode is the fixed citation table per mode. The list length and
// content depend only on the mode used to answer.
var sourcesByMode = map[domain.Mode][]domain.Source{
	domain.ModeGeneral: {
		{Title: "Nature Journal", URL: "#", Domain: "nature.com"},
		{Title: "MIT Tech Review", URL: "#", Domain: "technologyreview.com"},
		{Title: "Stanford Research", URL: "#", Domain: "stanford.edu"},
	},
	domain.ModeCreative: {
		{Title: "Creative Thinking Guide", URL: "#", Domain: "creative.org"},
		{Title: "Innovation Masterclass", URL: "#", Domain: "masterclass.com"},
	},
	domain.ModeCode: {
		{Title: "MDN JavaScript Docs", URL: "#", Domain: "developer.mozilla.org"},
		{Title: "Design Patterns", URL: "#", Domain: "patterns.dev"},
	},
	domain.ModeImage: {
		{Title: "AI Art Guide", URL: "#", Domain: "midjourney.com"},
		{Title: "Digital Art Fundamentals", URL: "#", Domain: "behance.net"},
	},
}
