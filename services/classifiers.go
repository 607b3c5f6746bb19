package services

import (
	"idea-feed/classifier"
	"idea-feed/config"
	"idea-feed/feeder"
	"idea-feed/models"
)

// ClassifierSet picks the classifier for a post's platform.
type ClassifierSet struct {
	byPlatform map[models.Platform]*classifier.Classifier
	fallback   *classifier.Classifier
}

// NewClassifierSet compiles the classifiers for preset. Unknown presets and
// config.PresetUnion use the union rule set for every platform.
func NewClassifierSet(preset string) ClassifierSet {
	set := ClassifierSet{fallback: classifier.Default()}
	if preset == config.PresetPerPlatform {
		set.byPlatform = map[models.Platform]*classifier.Classifier{
			models.PlatformReddit:  classifier.New(classifier.RedditConfig()),
			models.PlatformTwitter: classifier.New(classifier.TwitterConfig()),
		}
	}
	return set
}

func (s ClassifierSet) For(p models.Platform) *classifier.Classifier {
	if c, ok := s.byPlatform[p]; ok {
		return c
	}
	if s.fallback == nil {
		return classifier.Default()
	}
	return s.fallback
}

// Classify runs the platform classifier. Twitter posts also take allowed
// hashtags as tags.
func (s ClassifierSet) Classify(post feeder.Post) classifier.Classification {
	var opts []classifier.Option
	if post.Platform == models.PlatformTwitter {
		opts = append(opts, classifier.WithHashtags())
	}
	return s.For(post.Platform).ClassifyPost(post.RawPost(), opts...)
}
