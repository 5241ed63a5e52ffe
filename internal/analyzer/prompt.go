package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/medplain/medplain/internal/report"
)

// promptBudget caps how much report text is embedded in any provider
// prompt, to respect backend context limits. The full text still reaches
// the pattern matcher and fallback untruncated.
const promptBudget = 6000

func analysisSystemPrompt(lang report.Language) string {
	return fmt.Sprintf("You are an experienced medical report analyzer and healthcare advisor. Provide comprehensive, detailed, and easy-to-understand analysis in %s. Always include practical recommendations, treatment options, and when to consult a doctor.", lang.DisplayName())
}

func buildAnalysisPrompt(text string, lang report.Language) string {
	name := lang.DisplayName()
	excerpt := text
	truncated := ""
	if len(excerpt) > promptBudget {
		cut := promptBudget
		// Back off to a rune boundary so the excerpt stays valid UTF-8.
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
		truncated = "..."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze the following medical report comprehensively and provide a DETAILED analysis in %s.\n\n", name)
	sb.WriteString("CRITICAL: The \"summary\" field must be EXTENSIVE and DETAILED - analyze ALL parameters, values, and what they mean for the patient. Do NOT give a short summary. Explain what actually happened to this patient based on ALL test results.\n\n")
	sb.WriteString("Medical Report:\n")
	sb.WriteString(excerpt)
	sb.WriteString(truncated)
	sb.WriteString("\n\nProvide a comprehensive JSON response with:\n")
	sb.WriteString(`1. "summary": A DETAILED, EXTENSIVE summary (8-12 sentences minimum) that:
   - Analyzes ALL parameters from the report
   - Explains what each abnormal value means
   - Describes what is happening to the patient
   - Mentions specific test values and their significance
   - Example: "The patient's complete blood count reveals several concerning findings. The hemoglobin level is 9.10 g/dL, which is significantly below the normal range of 13.0-17.0 g/dL, indicating moderate to severe anemia. The white blood cell count is elevated at 10,560 cells/mcL (normal: 4,000-10,000), suggesting a possible infection or inflammatory process. Overall, the patient appears to have iron-deficiency anemia with a concurrent infection."

2. "detailedExplanation": A detailed paragraph (6-8 sentences) explaining what the report means, what the values indicate, what conditions might be present, and potential causes

3. "keyFindings": Array of 7-10 key findings with specific values and explanations (e.g., "Low hemoglobin (9.10 g/dL, normal: 13.0-17.0) - indicates moderate to severe anemia, may cause fatigue, weakness, and shortness of breath")

4. "treatmentRecommendations": Array of 4-6 treatment recommendations (e.g., "Iron supplements may be recommended to address the anemia", "Dietary changes to increase iron intake")

5. "medicineSuggestions": Array of 3-5 common medicines/treatments that might be prescribed. Include generic names and common brand names. Always add disclaimer that these are suggestions and doctor consultation is required.

6. "lifestyleAdvice": Array of 4-6 lifestyle recommendations (e.g., "Eat iron-rich foods like spinach, lentils, red meat, and fortified cereals", "Stay hydrated")

7. "whenToConsultDoctor": Array of 3-4 specific situations when immediate doctor consultation is needed

IMPORTANT:
- The summary MUST be detailed and analyze ALL parameters - this is critical!
- Explain medical terms in simple language
- Include specific test values and normal ranges
- Provide practical, actionable advice
- Include medicine names (generic and common brands) but always emphasize doctor consultation is essential
- Make it helpful like a caring healthcare professional would

Format your response as valid JSON only (no markdown, no code blocks):
{
  "summary": "detailed extensive summary analyzing all parameters",
  "detailedExplanation": "detailed explanation paragraph",
  "keyFindings": ["finding1", "finding2"],
  "treatmentRecommendations": ["treatment1", "treatment2"],
  "medicineSuggestions": ["medicine1", "medicine2"],
  "lifestyleAdvice": ["advice1", "advice2"],
  "whenToConsultDoctor": ["situation1", "situation2"]
}`)
	return sb.String()
}
