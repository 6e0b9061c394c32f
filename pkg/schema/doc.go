// Package schema parses declarative tool schema documents, preserving the order of parameters, and builds the documentation and JSON schema metadata exposed to the LLM.
package schema
