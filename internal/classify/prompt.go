package classify

import "fmt"

// languageName maps a language code to the name used in the instruction text.
func languageName(code string) string {
	if code == "te" {
		return "Telugu"
	}
	return "English"
}

// buildPrompt assembles the analysis instruction. The reply must conform to
// one of three JSON shapes: civic-issue-confirmed, not-a-civic-issue, or
// unclear-image; any other shape triggers the degraded-parse fallback.
func buildPrompt(language string) string {
	return fmt.Sprintf(`You are an expert image analyst. Your first task is to determine if the provided image contains a recognizable civic issue (like a pothole, garbage, broken infrastructure, etc.).

**IMPORTANT: Your entire response must be in the %s language.**

If it **is** a civic issue, analyze it for Telangana, India, and provide a JSON response with the following structure:
{
  "isCivicIssue": true,
  "issueType": "string - Identify the specific civic problem (pothole, garbage dumping, etc.)",
  "severity": "Low|Medium|High - Rate based on public safety impact",
  "description": "string - Brief description of the observed issue",
  "recommendedPortal": {
    "name": "string - Portal name",
    "department": "string - Government department",
    "website": "string - Official website URL",
    "helpline": "string - Phone number",
    "onlineComplaint": "string - Complaint portal URL"
  },
  "actionSteps": ["array of strings - Step-by-step actions for the citizen"],
  "estimatedResolutionTime": "string - Expected time for resolution"
}

If the image **is not** a recognizable civic issue, provide this JSON structure instead:
{
  "isCivicIssue": false,
  "issueType": "Not a Civic Issue",
  "description": "string - A brief, neutral description of what is in the image (e.g., 'A table of data', 'A person smiling')."
}

If the image is **too blurry or unclear** to analyze, provide this JSON structure:
{
  "isCivicIssue": false,
  "issueType": "Unclear Image",
  "description": "The image is too blurry or unclear to analyze. Please upload a clearer photo."
}

**Telangana Portal Guidelines (only for civic issues):**
- **GHMC**: Hyderabad city issues (roads, garbage, streetlights, water logging) - https://ghmc.gov.in, 040-21111111
- **TSSPDCL/TSNPDCL**: Electrical hazards, power lines - https://www.tssouthernpower.com, 1912
- **HMWS&SB**: Water supply, sewage, drainage - https://www.hyderabadwater.gov.in, 040-23234567
- **Telangana Pollution Control Board**: Environmental violations - https://www.tspcb.gov.in, 040-23320142

Respond only with valid JSON.`, languageName(language))
}
