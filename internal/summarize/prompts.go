package summarize

import "briefcast/models"

// promptSet holds the three instruction templates a content type uses:
// single for text that fits in one request, section for per-chunk passes,
// and combine for merging section summaries.
type promptSet struct {
	single  string
	section string
	combine string
}

var promptSets = map[models.ContentType]promptSet{
	models.ContentTechnical: {
		single: `Create a comprehensive technical summary of the following content.

Structure your summary as follows:
1. **Title**: Create a clear, descriptive title
2. **Overview**: Brief introduction explaining what this content covers
3. **Key Concepts**: List and explain the main technical concepts, methods, or algorithms
4. **Important Details**: Highlight critical technical details, specifications, or implementation notes
5. **Conclusion**: Summarize the main takeaways and practical applications

Focus on technical accuracy and include specific terminology.`,
		section: `Summarize this technical content section, focusing on:
- Key technical concepts and methods
- Important specifications or parameters
- Critical implementation details
- Any algorithms or processes described`,
		combine: `Create a comprehensive technical summary from these section summaries.

Structure as:
**Title**: [Descriptive technical title]
**Overview**: [What this covers technically]
**Key Technical Concepts**:
• [List main concepts with brief explanations]
**Implementation Details**:
• [Important technical specifications]
**Conclusion**: [Main technical takeaways and applications]`,
	},
	models.ContentNarrative: {
		single: `Create an engaging summary of this narrative content.

Structure your summary as follows:
1. **Title**: Create an engaging title that captures the essence
2. **Introduction**: Set the context and main theme
3. **Key Points**: Main events, characters, or story elements in chronological order
4. **Important Themes**: Central themes, messages, or lessons
5. **Conclusion**: How it concludes and the overall impact

Maintain the narrative flow and emotional tone.`,
		section: `Summarize this narrative section, preserving:
- Key events or developments
- Important character interactions
- Significant plot points or themes
- Emotional tone and context`,
		combine: `Create a cohesive narrative summary from these section summaries.

Structure as:
**Title**: [Engaging title]
**Introduction**: [Context and setting]
**Story Development**:
• [Key events in order]
**Main Themes**:
• [Central themes and messages]
**Conclusion**: [Resolution and impact]`,
	},
	models.ContentGeneral: {
		single: `Create a comprehensive and well-structured summary of the following content.

Format your response as:
1. **Title**: Create a clear, descriptive title
2. **Introduction**: Brief overview of the main topic and purpose
3. **Key Points**:
   • Main ideas and important information organized logically
   • Use bullet points for clarity
4. **Important Details**:
   • Significant facts, figures, or examples
   • Any actionable items or recommendations
5. **Conclusion**: Summarize the main takeaways and significance

Ensure the summary is informative, well-organized, and captures the essential information.`,
		section: `Create a concise summary of this content section, focusing on:
- Main ideas and key information
- Important facts or data points
- Any conclusions or recommendations

Keep it clear and informative.`,
		combine: `Create a comprehensive final summary from these section summaries.

Structure as:
**Title**: [Clear descriptive title]
**Introduction**: [Overview of the topic]
**Key Information**:
• [Main points organized logically]
**Important Details**:
• [Significant facts and insights]
**Conclusion**: [Main takeaways and significance]`,
	},
}

const quizPrompt = `Based on the following content, generate a practice quiz with 5-7 multiple-choice questions.
For each question, provide four options (A, B, C, D) and clearly indicate the correct answer.
The questions should cover the main concepts and key details from the text.`

func prompts(ct models.ContentType) promptSet {
	if set, ok := promptSets[ct]; ok {
		return set
	}
	return promptSets[models.ContentGeneral]
}
