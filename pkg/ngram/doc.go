/*
Package ngram provides an in-memory toolkit for building n-gram language models
from plain text and sampling random sentences from them.

A model is trained once from a single lowercase corpus string: the text is split
into sentences, each sentence into word and punctuation tokens, and the counts of
every n-length and (n-1)-length token window are turned into conditional
probabilities. Sentences are then generated with a start-anchored random walk
that stops as soon as sentence-ending punctuation is produced.

Order 1 models are handled by a separate unigram path with no context.
*/
package ngram
