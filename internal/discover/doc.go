// Package discover implements the online and offline domain discovery workflows.
//
// A discovery validates the Java, Oracle and domain homes, saves the project so every derived file name is known,
// then asks the discovery tool to build the model. Every step goes through a stepflow pipeline, so the first failing
// step aborts the discovery and the presentation surface is always closed once.
package discover
