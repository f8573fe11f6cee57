// Package backend implements the discovery collaborators on top of the local file system and the WebLogic Deploy
// Tooling scripts.
package backend
