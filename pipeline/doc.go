// Package pipeline sequences in-place buffer transforms and optional
// feature extraction.
//
// A [Pipeline] is an ordered list of [Step] values. Steps are built
// directly, or by name through a [Registry] from [Params], which is how
// YAML recipes ([ParseRecipe], [LoadRecipe]) are turned into pipelines.
//
// Each buffer is owned by one caller at a time. [Session] serialises access
// to a long-lived buffer, [Sessions] hands sessions out by id, and
// [RunBatch] processes independent buffers on a worker pool.
package pipeline
