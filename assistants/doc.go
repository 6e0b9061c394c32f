// Package assistants provides the tool host of an LLM agent: the tool collection
// exposed to the LLM, the services the tools are bound to, and the dispatch of tool calls.
package assistants
