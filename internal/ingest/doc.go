// Package ingest serves the HTTP endpoint the paired mobile app uploads
// datasets through.
//
// The server exposes dataset listing/creation, trained-artifact download, and
// base64 video upload on a local-network port. Uploads are written into the
// dataset's positives directory, converted to still frames in place, and the
// original video is removed afterwards. Two contracts here are deliberately
// asymmetric and must stay that way: conversion failure never downgrades a
// successful upload response, and the post-conversion delete is log-only.
// Uploading to an unknown dataset creates it implicitly.
package ingest
