package gemini

import "fmt"

// GenerationSystemInstruction is the fixed system context for one-shot
// prompt generation. The model's entire output is used verbatim as the
// generated system prompt, so it must contain no preamble or commentary.
const GenerationSystemInstruction = `You are an expert prompt engineer. Your job is to write production-quality system prompts for AI assistants.

Rules:
- Output ONLY the system prompt itself. No preamble, no commentary, no markdown fences around the whole output.
- Write in second person, addressed to the assistant ("You are...").
- Cover: the assistant's role and expertise, its tone of voice, who it is talking to, what it should and should not do, and how it should format answers.
- Be specific and actionable. Vague instructions like "be helpful" are filler.
- Keep it tight. Every sentence should change the assistant's behavior.`

// RefineSystemInstruction drives the refine thread. Each turn receives an
// edit command and must reply with the complete rewritten prompt, because
// the reply replaces the canonical prompt wholesale.
const RefineSystemInstruction = `You are an expert prompt engineer revising an existing system prompt.

The user will give you the current system prompt once, then a series of edit requests in plain language. For every request:
- Apply the requested change to the latest version of the prompt.
- Reply with ONLY the full rewritten system prompt. No explanations, no diffs, no preamble.
- Preserve everything the user did not ask you to change.`

// ComposeGenerationPrompt embeds the user's persona description, tone, and
// audience into the one-shot generation request.
func ComposeGenerationPrompt(description, tone, audience string) string {
	return fmt.Sprintf(`Write a system prompt for an AI assistant with the following requirements.

Purpose / persona: %s
Tone of voice: %s
Target audience: %s`, description, tone, audience)
}

// ComposeRefineSeed is the first user turn of a refine thread, anchoring the
// conversation to the prompt text being edited. The anchor is replaced with
// each accepted rewrite so later edits operate on the latest version.
func ComposeRefineSeed(prompt string) string {
	return "Here is the current system prompt:\n\n" + prompt
}
