// Package pkg provides the libraries behind astrolabe, the placement and
// auto-layout engine of a graph-chat canvas.
//
// # Overview
//
// A graph chat shows a conversation as nodes on a two-dimensional canvas:
// prompts, responses, and the edges between them. The pkg directory is
// organized into three areas:
//
//  1. Model: [geometry], [canvas] and [chat] define points, boxes, handles,
//     canvas nodes and edges, and the conversation they are derived from.
//  2. Algorithms: [placement] finds free positions for new prompts and
//     branches; [autolayout] arranges a whole canvas with Graphviz dot.
//  3. Infrastructure: [pipeline] runs both with caching ([cache]), hooks
//     ([observability]) and logging; [config] and [errors] are shared.
//
// # Data Flow
//
//	conversation (chat) ──► canvas ──┬─► placement.Resolve / Branch
//	                                 └─► autolayout.Compute ──► engine (dot)
//	                                              ▲
//	                                  pipeline.Runner + cache
//
// # Quick Start
//
// Place the next prompt to the right of the conversation:
//
//	res := placement.Resolve(c.Nodes, placement.Right)
//	fmt.Println(res.Position)
//
// Lay out a whole canvas top to bottom:
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	laid, err := runner.AutoLayout(ctx, c.Nodes, c.Edges, autolayout.DefaultSettings())
//
// [geometry]: github.com/matzehuels/astrolabe/pkg/geometry
// [canvas]: github.com/matzehuels/astrolabe/pkg/canvas
// [chat]: github.com/matzehuels/astrolabe/pkg/chat
// [placement]: github.com/matzehuels/astrolabe/pkg/placement
// [autolayout]: github.com/matzehuels/astrolabe/pkg/autolayout
// [pipeline]: github.com/matzehuels/astrolabe/pkg/pipeline
// [cache]: github.com/matzehuels/astrolabe/pkg/cache
// [observability]: github.com/matzehuels/astrolabe/pkg/observability
// [config]: github.com/matzehuels/astrolabe/pkg/config
// [errors]: github.com/matzehuels/astrolabe/pkg/errors
package pkg
