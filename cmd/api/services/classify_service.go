package services

import (
	"idea-feed/classifier"
	"idea-feed/feeder"
	"idea-feed/models"
	ideaServices "idea-feed/services"
)

type ClassifyService struct {
	classifiers ideaServices.ClassifierSet
}

func NewClassifyService(classifiers ideaServices.ClassifierSet) *ClassifyService {
	return &ClassifyService{classifiers: classifiers}
}

// Classify runs the classifier of platform on title and body. An empty or
// unknown platform uses the union rule set.
func (s *ClassifyService) Classify(title, body string, platform models.Platform) classifier.Classification {
	return s.classifiers.Classify(feeder.Post{Platform: platform, Title: title, Body: body})
}
