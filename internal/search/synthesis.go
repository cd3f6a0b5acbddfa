package search

import (
	"fmt"
	"strings"
)

const synthesisSystemPrompt = "You are a helpful research analyst who provides accurate, well-sourced information."

// synthesisTemplate steers the answer structure for one intent.
type synthesisTemplate struct {
	Instruction   string
	FormatExample string
}

var synthesisTemplates = map[Intent]synthesisTemplate{
	IntentProgramming: {
		Instruction: "CRITICAL: Focus on technical details, version information, installation instructions, and official documentation. Use EXACT formatting with bold headers and bullet points. Include code examples if mentioned.",
		FormatExample: `
**Library Version**: X.X.X (latest from GitHub/PyPI)

**Installation**:
- ` + "`pip install library-name`" + ` (official method)
- ` + "`python -m pip install library-name`" + ` (alternative)

**Key Features**:
- Feature 1: Description (GitHub/Docs)
- Feature 2: Description (source)

**System Requirements**:
- Python version: X.X+ required
- Platform compatibility: Windows/macOS/Linux
- Dependencies: List if mentioned

**Documentation**:
- Official docs: [URL]
- GitHub repository: [URL]
- PyPI page: [URL]

**Recent Updates**:
- Version X.X.X: What changed (GitHub Releases)
- New features: List improvements (source)
`,
	},
	IntentCrypto: {
		Instruction: "CRITICAL: Aggregate ALL price data from multiple sources. Include current price, 24h volume, market cap, price movements, and trading information. Show price variations between sources. Use EXACT formatting with bold headers.",
		FormatExample: `
**Current [Coin] Price**:
- $X,XXX USD (CoinMarketCap)
- $X,XXX USD (CoinGecko)

**Market Statistics**:
- 24h Trading Volume: $XX billion (source) vs $XX billion (source)
- Market Cap: $X.XX trillion (source) vs $X.XX trillion (source)
- 24h Change: +/-X.XX% (source)
- Current Ranking: #X (CoinMarketCap)

**Trading Information**:
- Most Active Pair: BTC/USDT (volume: $X billion)
- Popular Exchanges: Exchange1, Exchange2 (sources)
- Recent Price Action: Technical analysis and price movements (sources)

**Additional Context**:
- Key developments or news affecting price (if mentioned)
- Price predictions or analyst views (if available)
`,
	},
	IntentNews: {
		Instruction: "Focus on recent events, breaking news, and current developments. Prioritize the most recent information and provide timeline context.",
		FormatExample: `
**Breaking News**: Most recent developments
**Timeline**:
- Today: Event A
- Yesterday: Event B
**Key Details**: Important facts and figures
**Sources**: Multiple news outlets with links
`,
	},
	IntentAcademic: {
		Instruction: "Focus on research findings, methodologies, citations, and academic credibility. Highlight peer-reviewed sources.",
		FormatExample: `
**Research Findings**: Key discoveries
**Methodology**: How research was conducted
**Publications**: Journal articles and papers
**Citations**: Reference count and impact
`,
	},
	IntentBusiness: {
		Instruction: "Focus on financial data, business metrics, corporate announcements, and market impact.",
		FormatExample: `
**Financial Data**: Revenue, earnings, stock price
**Business Metrics**: Performance indicators
**Recent Announcements**: Corporate news
**Market Impact**: How it affects industry
`,
	},
	IntentHealth: {
		Instruction: "Focus on medical research, treatment options, and health recommendations from credible medical sources.",
		FormatExample: `
**Medical Research**: Latest findings
**Treatment Options**: Available treatments
**Health Recommendations**: Expert advice
**Credible Sources**: Medical institutions
`,
	},
	IntentGeneral: {
		Instruction: "Provide a comprehensive overview covering all relevant aspects found in the search results.",
		FormatExample: `
**Key Information**: Most important facts
**Details**: Supporting information
**Sources**: Multiple references
`,
	},
}

// buildSynthesisPrompt assembles the analyst prompt handed to the generation
// backend.
func buildSynthesisPrompt(userQuery, contextBlock, priorContext, language string, intent Intent) string {
	tmpl, ok := synthesisTemplates[intent]
	if !ok {
		tmpl = synthesisTemplates[IntentGeneral]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert information analyst. Create a comprehensive, well-structured response.

SEARCH INTENT: %s
SPECIAL INSTRUCTIONS: %s

CRITICAL REQUIREMENTS:
1. **USE MARKDOWN FORMATTING** - Always use **bold headers**, `+"`code blocks`"+`, and proper bullet points
2. **FOLLOW EXACT TEMPLATE STRUCTURE** - Don't deviate from the format example provided
3. **AGGREGATE DATA FROM ALL SOURCES** - Don't just use one source, combine information from multiple sources
4. **SHOW DATA VARIATIONS** - If different sources show different values, display all of them
5. **INCLUDE ALL RELEVANT INFORMATION** - Don't skip important technical details or version info
6. **CITE SOURCES PROPERLY** - Include source names in parentheses (GitHub), (PyPI), etc.
7. **BE COMPREHENSIVE** - Use ALL the valuable data provided, not just the first result
8. **MAINTAIN CLEAN STRUCTURE** - Each section should be clearly separated and well-organized

FORMAT EXAMPLE FOR %s:
%s

SEARCH RESULTS WITH MULTIPLE DATA POINTS:
%s
`, intent, tmpl.Instruction, strings.ToUpper(intent.String()), tmpl.FormatExample, contextBlock)

	if priorContext != "" {
		fmt.Fprintf(&b, "\nPREVIOUS CONVERSATION CONTEXT:\n%s\n", priorContext)
	}

	fmt.Fprintf(&b, `
USER QUESTION: %s

LANGUAGE: %s (write the entire response in this language)

Generate a structured response that synthesizes ALL relevant information from the search results. Make sure to aggregate data from multiple sources and show variations when they exist.`, userQuery, language)

	return b.String()
}
