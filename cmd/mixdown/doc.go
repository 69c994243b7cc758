// Command mixdown edits, analyzes, and produces multi-track podcast
// timelines from the terminal. Timelines live in JSON project files;
// every subcommand loads one, mutates or inspects it, and writes it back.
package main
