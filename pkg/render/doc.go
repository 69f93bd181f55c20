// Package render rasterizes DOT graph descriptions.
//
// Two [Renderer] implementations exist:
//
//   - [Graphviz] runs Graphviz in process through goccy/go-graphviz and
//     needs no installed tools
//   - [Command] pipes the DOT text into an external dot binary
//     ("dot -Tsvg")
//
// [New] picks one from the render section of the configuration. [Validate]
// parses DOT text without rendering it, which is how the pipeline checks
// that a generated graph is accepted by Graphviz.
package render
